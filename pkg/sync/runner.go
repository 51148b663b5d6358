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
	"errors"
	"log/slog"

	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/vault"
)

// Runner executes one synchronization pass per configured namespace, all
// against the same vault and strategy. Namespace failures do not stop the
// pass; the joined error covers every namespace that failed outright
// (enumeration or invalid config), while per-item failures stay inside the
// reports.
type Runner struct {
	vault      vault.Client
	store      secrets.Store
	vaultName  string
	namespaces []string
	strategy   SelectionStrategy
	dryRun     bool
}

// NewRunner creates a Runner for the given targets.
func NewRunner(v vault.Client, store secrets.Store, vaultName string, namespaces []string, strategy SelectionStrategy, dryRun bool) *Runner {
	return &Runner{
		vault:      v,
		store:      store,
		vaultName:  vaultName,
		namespaces: namespaces,
		strategy:   strategy,
		dryRun:     dryRun,
	}
}

// Run synchronizes every configured namespace and returns the reports for
// the namespaces that produced one.
func (r *Runner) Run(ctx context.Context) ([]*Report, error) {
	reports := make([]*Report, 0, len(r.namespaces))
	var errs []error

	for _, ns := range r.namespaces {
		s := NewSyncer(Config{
			Vault:     r.vaultName,
			Namespace: ns,
			Strategy:  r.strategy,
			DryRun:    r.dryRun,
		}, r.vault, r.store)

		report, err := s.Run(ctx)
		if err != nil {
			slog.Error("namespace sync failed", "vault", r.vaultName, "namespace", ns, "error", err)
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}
