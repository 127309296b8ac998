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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v2"
)

// DefaultClientConfig is the default Alertmanager client configuration.
var DefaultClientConfig = ClientConfig{
	Timeout:          10 * time.Second,
	HTTPClientConfig: DefaultHTTPClientConfig,
}

// ClientConfig describes how to reach one Alertmanager.
type ClientConfig struct {
	// Base URL of Alertmanager, e.g. http://localhost:9093. A path is kept
	// as a prefix for the API endpoints.
	URL URL `yaml:"url" json:"url"`
	// Timeout for a whole push request.
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	HTTPClientConfig HTTPClientConfig `yaml:"http_config,omitempty" json:"http_config,omitempty"`
}

// SetDirectory joins any relative file paths with dir.
func (c *ClientConfig) SetDirectory(dir string) {
	if c == nil {
		return
	}
	c.HTTPClientConfig.SetDirectory(dir)
}

// Validate checks the URL and timeout.
func (c *ClientConfig) Validate() error {
	if c.URL.URL == nil || c.URL.String() == "" {
		return errors.New("url must be configured")
	}
	if c.URL.Scheme != "http" && c.URL.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q for url", c.URL.Scheme)
	}
	if c.URL.Host == "" {
		return errors.New("url must have a host")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", c.Timeout)
	}
	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *ClientConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain ClientConfig
	*c = DefaultClientConfig
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}
	return c.Validate()
}

func (c ClientConfig) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<error creating client config string: %s>", err)
	}
	return string(b)
}

// Load parses the YAML input s into a ClientConfig.
func Load(s string) (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := yaml.UnmarshalStrict([]byte(s), cfg); err != nil {
		return nil, err
	}
	// An empty document never reaches UnmarshalYAML.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile parses the given YAML file into a ClientConfig. Relative file
// paths inside the configuration are resolved against the file's directory.
func LoadFile(filename string) (*ClientConfig, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg, err := Load(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing YAML file %s: %w", filename, err)
	}
	cfg.SetDirectory(filepath.Dir(filename))
	return cfg, nil
}
