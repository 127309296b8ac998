// Copyright 2013 The Prometheus Authors
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

package model

import (
	"fmt"
	"time"
)

// Alert is a single alert as accepted by the Alertmanager v2 API.
//
// Alerts are built with NewAlert and the With* methods. Every method returns
// a new Alert and never modifies the receiver, so partially built alerts can
// be shared and extended independently:
//
//	base := model.NewAlert("HighMemoryUsage").WithLabel("service", "api")
//	a := base.WithSeverity(model.SeverityWarning)
//	b := base.WithSeverity(model.SeverityCritical)
type Alert struct {
	// Label value pairs for purpose of aggregation, matching, and disposition
	// dispatching. This must minimally include an "alertname" label.
	Labels LabelSet `json:"labels"`

	// Extra key/value information which does not define alert identity.
	Annotations LabelSet `json:"annotations"`

	// The known time range for this alert. Both ends are optional, a zero
	// time is left out of the payload.
	StartsAt time.Time `json:"startsAt,omitzero"`
	EndsAt   time.Time `json:"endsAt,omitzero"`

	// Link back to the entity that generated the alert.
	GeneratorURL string `json:"generatorURL,omitempty"`
}

// NewAlert returns an alert named name that started now.
func NewAlert(name string) Alert {
	return NewAlertAt(name, time.Now())
}

// NewAlertAt returns an alert named name that started at startsAt.
func NewAlertAt(name string, startsAt time.Time) Alert {
	return Alert{
		Labels:      LabelSet{AlertNameLabel: LabelValue(name)},
		Annotations: LabelSet{},
		StartsAt:    startsAt,
	}
}

func (a Alert) clone() Alert {
	a.Labels = a.Labels.Clone()
	a.Annotations = a.Annotations.Clone()
	return a
}

// WithLabel returns a copy of a with the label key set to value. An existing
// value for key is overwritten.
func (a Alert) WithLabel(key, value string) Alert {
	a = a.clone()
	a.Labels[LabelName(key)] = LabelValue(value)
	return a
}

// WithSeverity sets the "severity" label.
func (a Alert) WithSeverity(s Severity) Alert {
	return a.WithLabel(SeverityLabel, s.String())
}

// WithAnnotation returns a copy of a with the annotation key set to value.
// Annotations do not take part in deduplication.
func (a Alert) WithAnnotation(key, value string) Alert {
	a = a.clone()
	a.Annotations[LabelName(key)] = LabelValue(value)
	return a
}

// WithSummary sets the "summary" annotation.
func (a Alert) WithSummary(summary string) Alert {
	return a.WithAnnotation(SummaryAnnotation, summary)
}

// WithDescription sets the "description" annotation.
func (a Alert) WithDescription(description string) Alert {
	return a.WithAnnotation(DescriptionAnnotation, description)
}

// WithGeneratorURL sets the link back to the alert's source.
func (a Alert) WithGeneratorURL(url string) Alert {
	a = a.clone()
	a.GeneratorURL = url
	return a
}

// WithStartsAt overrides the start of the alert.
func (a Alert) WithStartsAt(t time.Time) Alert {
	a = a.clone()
	a.StartsAt = t
	return a
}

// WithEndsAt sets the end of the alert. An alert whose end is set is
// considered resolved by Alertmanager once that time has passed.
func (a Alert) WithEndsAt(t time.Time) Alert {
	a = a.clone()
	a.EndsAt = t
	return a
}

// Resolve marks the alert as resolved now.
func (a Alert) Resolve() Alert {
	return a.ResolveAt(time.Now())
}

// ResolveAt marks the alert as resolved at t. Labels, annotations and the
// start time are kept.
func (a Alert) ResolveAt(t time.Time) Alert {
	return a.WithEndsAt(t)
}

// Alertname returns the value of the "alertname" label and whether it is set.
func (a Alert) Alertname() (string, bool) {
	v, ok := a.Labels[AlertNameLabel]
	return string(v), ok
}

// Name returns the name of the alert. It is equivalent to the "alertname" label.
func (a Alert) Name() string {
	return string(a.Labels[AlertNameLabel])
}

// Resolved reports whether an end time has been set.
func (a Alert) Resolved() bool {
	return !a.EndsAt.IsZero()
}

// String returns the alert name, its labels and whether it is active or
// resolved, for example HighCPU{alertname="HighCPU"}[active].
func (a Alert) String() string {
	s := fmt.Sprintf("%s%s", a.Name(), a.Labels)
	if a.Resolved() {
		return s + "[resolved]"
	}
	return s + "[active]"
}
