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
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/vault"
)

// Syncer drives one-namespace sync runs against a vault and a cluster.
type Syncer struct {
	cfg   Config
	vault vault.Client
	store secrets.Store
}

// NewSyncer creates a Syncer for the given configuration. The configuration
// must have been validated.
func NewSyncer(cfg Config, vc vault.Client, store secrets.Store) *Syncer {
	return &Syncer{cfg: cfg, vault: vc, store: store}
}

// Run executes one sequential sync run and returns its report. A run-level
// error means candidate enumeration itself failed; per-item failures are
// counted in the report and never abort the run.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Vault:     s.cfg.Vault,
		Namespace: s.cfg.Namespace,
		Strategy:  s.cfg.Strategy,
		DryRun:    s.cfg.DryRun,
		Started:   time.Now().UTC(),
	}

	slog.Info("sync run starting",
		"runId", report.RunID,
		"vault", s.cfg.Vault,
		"namespace", s.cfg.Namespace,
		"strategy", s.cfg.Strategy,
		"dryRun", s.cfg.DryRun)

	tagFilter := ""
	if s.cfg.Strategy == StrategyNamespaceList {
		tagFilter = s.cfg.Namespace
	}

	summaries, err := s.vault.List(ctx, s.cfg.Vault, tagFilter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeVaultQuery, "candidate enumeration failed", err)
	}

	// An item can appear more than once in list output (or carry several
	// matching tags under fan-out); it is processed at most once per run.
	seen := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "sync run canceled", ctx.Err())
		}
		if summary.Title == "" || seen[summary.Title] {
			continue
		}
		seen[summary.Title] = true

		report.record(s.processItem(ctx, summary.Title))
	}

	report.Duration = time.Since(report.Started)
	s.observe(report)

	slog.Info("sync run finished",
		"runId", report.RunID,
		"synced", report.Synced,
		"upToDate", report.UpToDate,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration.String())

	return report, nil
}

// processItem runs the fetch -> decide -> materialize pipeline for one item.
// All failures are absorbed into the returned result.
func (s *Syncer) processItem(ctx context.Context, title string) ItemResult {
	ns := s.cfg.Namespace
	res := ItemResult{Title: title, Namespace: ns}

	item, err := s.vault.Get(ctx, s.cfg.Vault, title)
	if err != nil {
		slog.Error("could not retrieve vault item, skipping",
			"vault", s.cfg.Vault, "item", title, "error", err)
		res.Status = StatusFailed
		res.Reason = "vault fetch failed"
		return res
	}

	if s.cfg.Strategy == StrategyTagFanOut && !tagsMatch(item.Tags, ns) {
		res.Status = StatusSkipped
		res.Reason = "no tag matches target namespace"
		return res
	}

	stale := true
	if item.UpdatedAt == "" {
		slog.Warn("item has no modification time, forcing update",
			"vault", s.cfg.Vault, "item", title)
	} else {
		stale = needsUpdate(ctx, s.store, ns, title, item.UpdatedAt)
	}

	if !stale {
		res.Status = StatusUpToDate
		return res
	}

	applied, err := s.materialize(ctx, item, ns)
	switch {
	case err != nil:
		slog.Error("could not apply secret, continuing",
			"namespace", ns, "name", title, "error", err)
		res.Status = StatusFailed
		res.Reason = "apply failed"
	case applied:
		res.Status = StatusSynced
	default:
		res.Status = StatusSkipped
		res.Reason = "no data fields after projection"
	}
	return res
}

// observe publishes the run outcome to Prometheus.
func (s *Syncer) observe(r *Report) {
	labels := []string{r.Vault, r.Namespace}
	itemsSyncedTotal.WithLabelValues(labels...).Add(float64(r.Synced))
	itemsUpToDateTotal.WithLabelValues(labels...).Add(float64(r.UpToDate))
	itemsSkippedTotal.WithLabelValues(labels...).Add(float64(r.Skipped))
	syncErrorsTotal.WithLabelValues(labels...).Add(float64(r.Failed))
	syncRunDuration.WithLabelValues(labels...).Observe(r.Duration.Seconds())
	lastRunTimestamp.WithLabelValues(labels...).SetToCurrentTime()
}

// tagsMatch reports whether any tag equals the target namespace under
// Unicode case folding.
func tagsMatch(tags []string, namespace string) bool {
	folder := cases.Fold()
	target := folder.String(namespace)
	for _, tag := range tags {
		if folder.String(tag) == target {
			return true
		}
	}
	return false
}
