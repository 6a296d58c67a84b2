// Copyright (c) 2025, restic-exporter authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exporter

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/resticlabs/restic-exporter/pkg/snapshot"
)

// Label defaults applied when a parsed field is absent.
const (
	defaultLabel     = "unknown"
	defaultTagsLabel = "none"
)

// Metrics holds the snapshot gauge families. It is registered on an
// explicitly owned registry passed in by the caller, not on the
// client_golang default registry, so tests and embedders control the
// full lifecycle.
type Metrics struct {
	count     prometheus.Gauge
	details   *prometheus.GaugeVec
	timestamp *prometheus.GaugeVec
}

// NewMetrics creates and registers the snapshot metric families.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		count: factory.NewGauge(prometheus.GaugeOpts{
			Name: "restic_snapshot_count",
			Help: "Number of restic snapshots",
		}),
		details: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "restic_snapshot_details",
			Help: "Details of each restic snapshot",
		}, []string{"host", "id", "date", "tags", "directory"}),
		timestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "restic_snapshot_timestamp",
			Help: "Timestamp of each restic snapshot",
		}, []string{"host", "id", "date"}),
	}
}

// Publish overwrites the registry state with the given record sequence.
//
// The per-snapshot vectors are reset first so the registry reflects only the
// current snapshot set; label tuples from snapshots removed upstream do not
// linger. Gauge updates for a given label-set are atomic with respect to
// concurrent scrapes, but there is no cross-family guarantee: a scrape
// mid-publish may pair a fresh count with stale series. The exporter is an
// eventually-consistent gauge snapshot, not a transactional dataset.
//
// Publish has no failure mode: an empty sequence sets the count to zero and
// emits no per-snapshot series.
func (m *Metrics) Publish(records []snapshot.Record) {
	m.details.Reset()
	m.timestamp.Reset()

	m.count.Set(float64(len(records)))

	for _, r := range records {
		host := labelValue(r.Host, defaultLabel)
		id := labelValue(r.ID, defaultLabel)
		tags := labelValue(r.Tags, defaultTagsLabel)
		directory := labelValue(r.Directory, defaultLabel)

		// The date label carries the Unix timestamp rendered as a string.
		date := strconv.FormatInt(r.Timestamp, 10)

		m.details.WithLabelValues(host, id, date, tags, directory).Set(r.SizeBytes)
		m.timestamp.WithLabelValues(host, id, date).Set(float64(r.Timestamp))
	}
}

// labelValue substitutes the fallback for an absent field, then trims
// whitespace before use as a label value.
func labelValue(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
