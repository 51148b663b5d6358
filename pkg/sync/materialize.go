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

	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/vault"
)

// projectData builds the secret key/value set from an item's fields,
// excluding notes and unlabeled fields. Duplicate labels keep the last
// occurrence, matching the field order the vault reports.
func projectData(fields []vault.Field) map[string][]byte {
	data := make(map[string][]byte, len(fields))
	for _, f := range fields {
		if f.IsNotes() || f.Label == "" || f.Value == "" {
			continue
		}
		data[f.Label] = []byte(f.Value)
	}
	return data
}

// materialize declares the destination secret for an item. An item whose
// projection is empty is a reported no-op: creating an empty secret would
// mask a misconfigured vault item upstream.
//
// The returned bool says whether a secret was (or in dry-run mode, would
// have been) applied.
func (s *Syncer) materialize(ctx context.Context, item *vault.Item, namespace string) (bool, error) {
	data := projectData(item.Fields)
	if len(data) == 0 {
		slog.Warn("item has no data fields after projection, skipping",
			"namespace", namespace, "item", item.Title)
		return false, nil
	}

	if s.cfg.DryRun {
		slog.Info("dry run, would apply secret",
			"namespace", namespace, "name", item.Title, "keys", len(data))
		return true, nil
	}

	labels := map[string]string{secrets.VaultLabel: s.cfg.Vault}
	if err := s.store.Apply(ctx, namespace, item.Title, data, labels); err != nil {
		return false, err
	}

	slog.Info("secret applied",
		"namespace", namespace, "name", item.Title, "keys", len(data))
	return true, nil
}
