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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess        = "success"
	resultAPIError       = "api_error"
	resultRequestError   = "request_error"
	resultSerializeError = "serialize_error"
)

type metrics struct {
	alertsSent prometheus.Counter
	requests   *prometheus.CounterVec
	duration   prometheus.Histogram
}

// newMetrics creates the client metrics. With a nil registerer they are
// still usable but not exported.
func newMetrics(r prometheus.Registerer) *metrics {
	m := &metrics{
		alertsSent: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "alertmanager_client_alerts_sent_total",
			Help: "Total number of alerts successfully pushed to Alertmanager.",
		}),
		requests: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "alertmanager_client_requests_total",
			Help: "Total number of push requests by result.",
		}, []string{"result"}),
		duration: promauto.With(r).NewHistogram(prometheus.HistogramOpts{
			Name:    "alertmanager_client_request_duration_seconds",
			Help:    "Duration of push requests to Alertmanager.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	for _, result := range []string{resultSuccess, resultAPIError, resultRequestError, resultSerializeError} {
		m.requests.WithLabelValues(result)
	}
	return m
}
