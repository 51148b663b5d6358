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

	"github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/vault"
)

// needsUpdate decides whether the destination secret is stale relative to
// the source item's modification time. Every ambiguous condition resolves
// toward recreation: missing a needed update is worse than re-applying an
// identical secret.
//
// It returns false only when the source timestamp parses and the destination
// is not older than the source.
func needsUpdate(ctx context.Context, store secrets.Store, namespace, name, sourceUpdatedAt string) bool {
	created, err := store.CreationTime(ctx, namespace, name)
	switch {
	case errors.IsNotFound(err):
		slog.Info("destination secret does not exist, will create",
			"namespace", namespace, "name", name)
		return true
	case err != nil:
		slog.Warn("could not retrieve destination creation time, forcing update",
			"namespace", namespace, "name", name, "error", err)
		return true
	case created.IsZero():
		slog.Warn("destination has no creation time, forcing update",
			"namespace", namespace, "name", name)
		return true
	}

	updated, err := vault.ParseTimestamp(sourceUpdatedAt)
	if err != nil {
		slog.Warn("source modification time unparsable, forcing update",
			"namespace", namespace, "name", name,
			"updatedAt", sourceUpdatedAt, "error", err)
		return true
	}

	if updated.After(created) {
		slog.Info("destination secret is stale",
			"namespace", namespace, "name", name,
			"sourceUpdated", updated, "destinationCreated", created)
		return true
	}

	slog.Info("destination secret is up to date",
		"namespace", namespace, "name", name)
	return false
}
