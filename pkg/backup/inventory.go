/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/

package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"time"

	apperrors "github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/k8s/secrets"
)

// KeyDigest records a single data key and the SHA-256 digest of its value.
// The value itself is never stored.
type KeyDigest struct {
	Key    string `json:"key" yaml:"key"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

// SecretRecord describes one managed secret in an inventory.
type SecretRecord struct {
	Name      string      `json:"name" yaml:"name"`
	Namespace string      `json:"namespace" yaml:"namespace"`
	Vault     string      `json:"vault,omitempty" yaml:"vault,omitempty"`
	Created   time.Time   `json:"created" yaml:"created"`
	Keys      []KeyDigest `json:"keys" yaml:"keys"`
}

// Inventory is the backup manifest for one or more namespaces.
type Inventory struct {
	GeneratedAt time.Time      `json:"generatedAt" yaml:"generatedAt"`
	Namespaces  []string       `json:"namespaces" yaml:"namespaces"`
	Count       int            `json:"count" yaml:"count"`
	Secrets     []SecretRecord `json:"secrets" yaml:"secrets"`
}

// Builder assembles inventories from a secret store.
type Builder struct {
	store secrets.Store
}

// NewBuilder creates a Builder backed by the given store.
func NewBuilder(store secrets.Store) *Builder {
	return &Builder{store: store}
}

// Build lists the managed secrets in each namespace and returns an
// inventory with digests in deterministic order.
func (b *Builder) Build(ctx context.Context, namespaces []string) (*Inventory, error) {
	if len(namespaces) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "at least one namespace is required")
	}

	inv := &Inventory{
		GeneratedAt: time.Now().UTC(),
		Namespaces:  namespaces,
	}

	for _, ns := range namespaces {
		list, err := b.store.ListManaged(ctx, ns)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
				fmt.Sprintf("failed to list managed secrets in %s", ns), err,
				map[string]any{"namespace": ns})
		}

		for _, sec := range list {
			rec := SecretRecord{
				Name:      sec.Name,
				Namespace: sec.Namespace,
				Vault:     sec.Labels[secrets.VaultLabel],
				Created:   sec.CreationTimestamp.Time,
				Keys:      digestKeys(sec.Data),
			}
			inv.Secrets = append(inv.Secrets, rec)
		}

		slog.Debug("inventoried namespace", "namespace", ns, "secrets", len(list))
	}

	sort.Slice(inv.Secrets, func(i, j int) bool {
		if inv.Secrets[i].Namespace != inv.Secrets[j].Namespace {
			return inv.Secrets[i].Namespace < inv.Secrets[j].Namespace
		}
		return inv.Secrets[i].Name < inv.Secrets[j].Name
	})
	inv.Count = len(inv.Secrets)

	return inv, nil
}

// digestKeys returns a sorted digest entry per data key.
func digestKeys(data map[string][]byte) []KeyDigest {
	out := make([]KeyDigest, 0, len(data))
	for k, v := range data {
		sum := sha256.Sum256(v)
		out = append(out, KeyDigest{Key: k, SHA256: hex.EncodeToString(sum[:])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
