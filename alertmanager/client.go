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

package alertmanager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/promslog"

	"github.com/prometheus/alertclient/config"
	"github.com/prometheus/alertclient/model"
)

const (
	alertsPath  = "api/v2/alerts"
	contentType = "application/json"

	// maxErrMsgLen caps how much of an error response body is kept.
	maxErrMsgLen = 1 << 20
)

// Client pushes alerts to a single Alertmanager. It is safe for concurrent
// use.
type Client struct {
	client    *http.Client
	baseURL   *url.URL
	userAgent string
	logger    *slog.Logger
	metrics   *metrics
}

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	userAgent  string
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger. Only debug messages are emitted.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer registers the client metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// WithUserAgent sets the User-Agent header of push requests. For clients
// created with NewWithClient the header is set on each request, otherwise
// by the transport.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// New returns a client for the Alertmanager at baseURL whose requests are
// bounded by timeout. A zero timeout disables it.
func New(baseURL *url.URL, timeout time.Duration, opts ...Option) (*Client, error) {
	cfg := config.DefaultClientConfig
	cfg.URL = config.URL{URL: baseURL}
	cfg.Timeout = timeout
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig returns a client built from cfg. Failures to build the HTTP
// transport, such as an unreadable CA file, are returned as
// *BuildTransportError.
func NewFromConfig(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	if cfg.URL.URL == nil {
		return nil, errors.New("no Alertmanager URL configured")
	}
	o := applyOptions(opts)
	httpClient, err := config.NewClientFromConfig(cfg.HTTPClientConfig, "alertmanager",
		config.WithTimeout(cfg.Timeout),
		config.WithUserAgent(o.userAgent),
	)
	if err != nil {
		return nil, &BuildTransportError{Err: err}
	}
	// The transport sets the User-Agent.
	o.userAgent = ""
	return newClient(httpClient, cfg.URL.URL, o), nil
}

// NewWithClient returns a client that sends requests through client, which
// may carry middleware such as retries or extra headers. Timeouts are up to
// the given client. baseURL must not be nil.
func NewWithClient(client *http.Client, baseURL *url.URL, opts ...Option) *Client {
	return newClient(client, baseURL, applyOptions(opts))
}

func applyOptions(opts []Option) options {
	var o options
	for _, f := range opts {
		f(&o)
	}
	if o.logger == nil {
		o.logger = promslog.NewNopLogger()
	}
	return o
}

func newClient(client *http.Client, baseURL *url.URL, o options) *Client {
	return &Client{
		client:    client,
		baseURL:   baseURL,
		userAgent: o.userAgent,
		logger:    o.logger,
		metrics:   newMetrics(o.registerer),
	}
}

// BaseURL returns the URL the client was created with.
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

func (c *Client) endpoint() *url.URL {
	return c.baseURL.JoinPath(alertsPath)
}

// PushAlerts sends all alerts to Alertmanager in a single request. An empty
// batch returns immediately without contacting Alertmanager.
//
// Alertmanager identifies alerts by their full label set, so pushing an
// alert with the same labels again updates the existing alert rather than
// creating a new one.
//
// The returned error is one of *RequestError, *SerializeError or *APIError.
func (c *Client) PushAlerts(ctx context.Context, alerts []model.Alert) error {
	if len(alerts) == 0 {
		c.logger.Debug("No alerts to push")
		return nil
	}

	u := c.endpoint()
	logger := c.logger.With("url", u.String(), "alerts", len(alerts))

	b, err := json.Marshal(alerts)
	if err != nil {
		c.metrics.requests.WithLabelValues(resultSerializeError).Inc()
		return &SerializeError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(b))
	if err != nil {
		c.metrics.requests.WithLabelValues(resultRequestError).Inc()
		return &RequestError{Kind: RequestOther, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("Pushing alerts to Alertmanager")
	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.requests.WithLabelValues(resultRequestError).Inc()
		return &RequestError{Kind: classifyRequestError(ctx, err), Err: err}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		c.metrics.requests.WithLabelValues(resultAPIError).Inc()
		// The status code is what matters, a body that cannot be read
		// leaves the message empty.
		var msg string
		if body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrMsgLen)); err == nil {
			msg = string(body)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	c.metrics.requests.WithLabelValues(resultSuccess).Inc()
	c.metrics.alertsSent.Add(float64(len(alerts)))
	logger.Debug("Alerts pushed successfully", "status", resp.StatusCode)
	return nil
}

// PushAlert sends a single alert.
func (c *Client) PushAlert(ctx context.Context, alert model.Alert) error {
	return c.PushAlerts(ctx, []model.Alert{alert})
}
