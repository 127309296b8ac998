// Copyright 2026 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// amsend pushes a single alert to Alertmanager.
//
//	amsend --alertmanager.url=http://localhost:9093 --name=DiskFull \
//		--severity=critical --label instance=db-01 --summary="Disk is full"
//
// The exit code is 0 on success, 1 when Alertmanager rejected the alert, 2
// when the push failed in a way worth retrying and 3 when the client could
// not be configured.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/promslog"
	promslogflag "github.com/prometheus/common/promslog/flag"
	"github.com/prometheus/common/version"

	"github.com/prometheus/alertclient/alertmanager"
	"github.com/prometheus/alertclient/config"
	"github.com/prometheus/alertclient/model"
)

const (
	exitOK = iota
	exitPermanent
	exitRetryable
	exitConfig
)

const programName = "amsend"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	url          string
	urlSet       bool
	configFile   string
	timeout      time.Duration
	timeoutSet   bool
	name         string
	severity     string
	labels       map[string]string
	annotations  map[string]string
	summary      string
	description  string
	generatorURL string
	resolve      bool
}

func newApp(f *flags, logCfg *promslog.Config) *kingpin.Application {
	app := kingpin.New(programName, "Push a single alert to Alertmanager.")
	app.Version(version.Print(programName))
	app.HelpFlag.Short('h')

	app.Flag("alertmanager.url", "Base URL of the Alertmanager. Overrides the URL of --config.file.").
		IsSetByUser(&f.urlSet).StringVar(&f.url)
	app.Flag("config.file", "Client configuration file.").ExistingFileVar(&f.configFile)
	app.Flag("timeout", "Timeout of the push request. Overrides the timeout of --config.file.").
		Default(config.DefaultClientConfig.Timeout.String()).IsSetByUser(&f.timeoutSet).DurationVar(&f.timeout)

	app.Flag("name", "Name of the alert.").Required().StringVar(&f.name)
	app.Flag("severity", "Severity of the alert.").Default(model.SeverityWarning.String()).
		EnumVar(&f.severity, model.SeverityCritical.String(), model.SeverityWarning.String(), model.SeverityInfo.String())
	app.Flag("label", "Extra label as key=value. Can be repeated.").StringMapVar(&f.labels)
	app.Flag("annotation", "Extra annotation as key=value. Can be repeated.").StringMapVar(&f.annotations)
	app.Flag("summary", "Summary annotation.").StringVar(&f.summary)
	app.Flag("description", "Description annotation.").StringVar(&f.description)
	app.Flag("generator-url", "Link back to the source of the alert.").StringVar(&f.generatorURL)
	app.Flag("resolve", "Send the alert as resolved.").BoolVar(&f.resolve)

	promslogflag.AddFlags(app, logCfg)
	return app
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	// StringMapVar writes into the given maps.
	f := flags{
		labels:      map[string]string{},
		annotations: map[string]string{},
	}
	logCfg := &promslog.Config{Writer: stderr}
	app := newApp(&f, logCfg)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	if _, err := app.Parse(args); err != nil {
		app.Errorf("%s, try --help", err)
		return exitConfig
	}
	logger := promslog.New(logCfg)

	alert, err := buildAlert(&f, time.Now())
	if err != nil {
		logger.Error("Invalid alert", "err", err)
		return exitConfig
	}

	client, err := newClient(&f, logger)
	if err != nil {
		logger.Error("Error creating Alertmanager client", "err", err)
		return exitConfig
	}

	logger = logger.With("url", client.BaseURL().String(), "alert", alert.String())
	if err := client.PushAlert(ctx, alert); err != nil {
		if alertmanager.IsRetryable(err) {
			logger.Error("Pushing alert failed, retry later", "err", err)
			return exitRetryable
		}
		logger.Error("Pushing alert failed", "err", err)
		return exitPermanent
	}
	logger.Info("Alert pushed")
	return exitOK
}

func buildAlert(f *flags, now time.Time) (model.Alert, error) {
	if f.name == "" {
		return model.Alert{}, errors.New("alert name must not be empty")
	}
	severity, err := model.ParseSeverity(f.severity)
	if err != nil {
		return model.Alert{}, err
	}

	alert := model.NewAlertAt(f.name, now).WithSeverity(severity)
	for k, v := range f.labels {
		alert = alert.WithLabel(k, v)
	}
	for k, v := range f.annotations {
		alert = alert.WithAnnotation(k, v)
	}
	if f.summary != "" {
		alert = alert.WithSummary(f.summary)
	}
	if f.description != "" {
		alert = alert.WithDescription(f.description)
	}
	if f.generatorURL != "" {
		alert = alert.WithGeneratorURL(f.generatorURL)
	}
	if f.resolve {
		alert = alert.ResolveAt(now)
	}
	return alert, nil
}

func loadClientConfig(f *flags) (*config.ClientConfig, error) {
	cfg := config.DefaultClientConfig
	if f.configFile != "" {
		c, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = *c
	}
	if f.urlSet {
		u, err := url.Parse(f.url)
		if err != nil {
			return nil, err
		}
		cfg.URL = config.URL{URL: u}
	}
	if f.timeoutSet || f.configFile == "" {
		cfg.Timeout = f.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newClient(f *flags, logger *slog.Logger) (*alertmanager.Client, error) {
	cfg, err := loadClientConfig(f)
	if err != nil {
		return nil, err
	}
	return alertmanager.NewFromConfig(*cfg,
		alertmanager.WithLogger(logger),
		alertmanager.WithUserAgent(version.ComponentUserAgent(programName)),
	)
}
