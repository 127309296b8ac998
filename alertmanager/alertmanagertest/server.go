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

// Package alertmanagertest provides a fake Alertmanager for tests.
package alertmanagertest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/prometheus/alertclient/route"
)

// Alert is an alert as received on the wire. Timestamps are kept as the
// raw strings so tests can check for their absence.
type Alert struct {
	Labels       map[string]string `json:"labels"`
	Annotations  map[string]string `json:"annotations"`
	StartsAt     string            `json:"startsAt,omitempty"`
	EndsAt       string            `json:"endsAt,omitempty"`
	GeneratorURL string            `json:"generatorURL,omitempty"`
}

// Request is one recorded push.
type Request struct {
	Header http.Header
	Body   []byte
	Alerts []Alert
}

// Server accepts POST <prefix>/api/v2/alerts and records every request. By
// default it answers 200 OK.
type Server struct {
	*httptest.Server

	baseURL *url.URL

	mtx      sync.Mutex
	status   int
	body     string
	requests []Request
}

// NewServer starts a fake Alertmanager serving under prefix, which may be
// empty. The server is closed when the test ends.
func NewServer(t testing.TB, prefix string) *Server {
	t.Helper()

	s := &Server{status: http.StatusOK}
	router := route.New().WithPrefix(prefix)
	router.Post("/api/v2/alerts", s.handleAlerts)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)

	u, err := url.Parse(s.Server.URL + prefix)
	if err != nil {
		t.Fatal(err)
	}
	s.baseURL = u
	return s
}

// Respond makes the server answer subsequent pushes with status and body.
func (s *Server) Respond(status int, body string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.status = status
	s.body = body
}

// BaseURL returns the URL to configure a client with, prefix included.
func (s *Server) BaseURL() *url.URL {
	u := *s.baseURL
	return &u
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]Request(nil), s.requests...)
}

// Alerts returns all alerts received so far, across requests.
func (s *Server) Alerts() []Alert {
	var alerts []Alert
	for _, r := range s.Requests() {
		alerts = append(alerts, r.Alerts...)
	}
	return alerts
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		http.Error(w, fmt.Sprintf("unexpected content type %q", ct), http.StatusUnsupportedMediaType)
		return
	}

	var alerts []Alert
	if err := json.Unmarshal(body, &alerts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mtx.Lock()
	s.requests = append(s.requests, Request{Header: r.Header.Clone(), Body: body, Alerts: alerts})
	status, respBody := s.status, s.body
	s.mtx.Unlock()

	w.WriteHeader(status)
	io.WriteString(w, respBody)
}
