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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	// AlertNameLabel is the name of the label containing the alert's name.
	AlertNameLabel = "alertname"

	// SeverityLabel is the conventional label carrying an alert's severity.
	SeverityLabel = "severity"

	// SummaryAnnotation holds a short, one-line description of an alert.
	SummaryAnnotation = "summary"

	// DescriptionAnnotation holds a longer description of an alert.
	DescriptionAnnotation = "description"
)

// A LabelName is a key for a LabelSet. No restrictions are placed on its
// content here; the receiving Alertmanager validates names on ingestion.
type LabelName string

// A LabelValue is an associated value for a LabelName.
type LabelValue string

// A LabelSet is a collection of LabelName and LabelValue pairs. For the
// labels of an alert, the complete set is the alert's identity: two alerts
// with equal label sets are the same alert to Alertmanager.
type LabelSet map[LabelName]LabelValue

// Equal returns true iff both label sets have exactly the same key/value pairs.
func (ls LabelSet) Equal(o LabelSet) bool {
	if len(ls) != len(o) {
		return false
	}
	for ln, lv := range ls {
		olv, ok := o[ln]
		if !ok {
			return false
		}
		if olv != lv {
			return false
		}
	}
	return true
}

// Clone returns a copy of the label set.
func (ls LabelSet) Clone() LabelSet {
	lsn := make(LabelSet, len(ls))
	for ln, lv := range ls {
		lsn[ln] = lv
	}
	return lsn
}

// Merge is a helper function to non-destructively merge two label sets.
// Values in other win on conflict.
func (ls LabelSet) Merge(other LabelSet) LabelSet {
	result := make(LabelSet, len(ls)+len(other))

	for k, v := range ls {
		result[k] = v
	}

	for k, v := range other {
		result[k] = v
	}

	return result
}

// LabelNames is a sortable LabelName slice.
type LabelNames []LabelName

func (l LabelNames) Len() int           { return len(l) }
func (l LabelNames) Less(i, j int) bool { return l[i] < l[j] }
func (l LabelNames) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// Names returns the label names of the set in ascending order.
func (ls LabelSet) Names() LabelNames {
	lns := make(LabelNames, 0, len(ls))
	for ln := range ls {
		lns = append(lns, ln)
	}
	sort.Sort(lns)
	return lns
}

// String formats the set as {name="value", ...} ordered by label name.
func (ls LabelSet) String() string {
	lstrs := make([]string, 0, len(ls))
	for _, ln := range ls.Names() {
		lstrs = append(lstrs, fmt.Sprintf("%s=%q", ln, ls[ln]))
	}
	return fmt.Sprintf("{%s}", strings.Join(lstrs, ", "))
}

// MarshalJSON implements the json.Marshaler interface. A nil label set is
// encoded as an empty object, Alertmanager rejects null maps.
func (ls LabelSet) MarshalJSON() ([]byte, error) {
	if ls == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[LabelName]LabelValue(ls))
}
