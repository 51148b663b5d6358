// Copyright (c) 2025, the opsync authors. All rights reserved.
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

package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsSyncedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsync_items_synced_total",
			Help: "Total number of secrets materialized into the cluster",
		},
		[]string{"vault", "namespace"},
	)

	itemsUpToDateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsync_items_up_to_date_total",
			Help: "Total number of items found fresh and left untouched",
		},
		[]string{"vault", "namespace"},
	)

	itemsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsync_items_skipped_total",
			Help: "Total number of items skipped (e.g. no data fields after projection)",
		},
		[]string{"vault", "namespace"},
	)

	syncErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsync_sync_errors_total",
			Help: "Total number of per-item sync failures",
		},
		[]string{"vault", "namespace"},
	)

	syncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opsync_run_duration_seconds",
			Help:    "Duration of full sync runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"vault", "namespace"},
	)

	lastRunTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "opsync_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed sync run",
		},
		[]string{"vault", "namespace"},
	)
)
