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

// Package secrets is the destination-secret boundary: creation-time lookup
// and declarative create-or-replace of namespaced secrets. Destinations are
// always fully re-declared via server-side apply, never patched, so the end
// state after two identical applies is identical.
package secrets

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/opskit/opsync/pkg/defaults"
	"github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/k8s/client"
)

const (
	// FieldManager identifies this tool to the API server for
	// server-side apply ownership.
	FieldManager = "opsync"

	// ManagedByLabel marks secrets materialized by this tool.
	ManagedByLabel = "app.kubernetes.io/managed-by"

	// VaultLabel records which vault a secret was materialized from.
	VaultLabel = "opsync.opskit.dev/vault"
)

// Store is the destination secret boundary used by the sync driver and the
// backup inventory.
type Store interface {
	// CreationTime returns the destination secret's creation timestamp.
	// A missing secret yields a NOT_FOUND coded error.
	CreationTime(ctx context.Context, namespace, name string) (time.Time, error)

	// Apply declares the secret with exactly the given data, creating it if
	// absent and fully replacing its data if present.
	Apply(ctx context.Context, namespace, name string, data map[string][]byte, labels map[string]string) error

	// ListManaged returns the secrets in the namespace that this tool
	// materialized.
	ListManaged(ctx context.Context, namespace string) ([]corev1.Secret, error)
}

// ClientStore is a Store backed by a Kubernetes clientset.
type ClientStore struct {
	cs client.Interface
}

// NewStore creates a Store on top of the given clientset.
func NewStore(cs client.Interface) *ClientStore {
	return &ClientStore{cs: cs}
}

// CreationTime implements Store.
func (s *ClientStore) CreationTime(ctx context.Context, namespace, name string) (time.Time, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.SecretReadTimeout)
	defer cancel()

	secret, err := s.cs.CoreV1().Secrets(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return time.Time{}, errors.WrapWithContext(errors.ErrCodeNotFound,
				"destination secret not found", err,
				map[string]any{"namespace": namespace, "name": name})
		}
		return time.Time{}, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"could not retrieve destination secret", err,
			map[string]any{"namespace": namespace, "name": name})
	}
	return secret.CreationTimestamp.Time, nil
}

// Apply implements Store using server-side apply, the atomic
// create-or-update path, with Force to take ownership from any previous
// field manager.
func (s *ClientStore) Apply(ctx context.Context, namespace, name string, data map[string][]byte, labels map[string]string) error {
	applyCtx, cancel := context.WithTimeout(ctx, defaults.SecretApplyTimeout)
	defer cancel()

	merged := map[string]string{ManagedByLabel: FieldManager}
	for k, v := range labels {
		merged[k] = v
	}

	secret := accorev1.Secret(name, namespace).
		WithLabels(merged).
		WithType(corev1.SecretTypeOpaque).
		WithData(data)

	_, err := s.cs.CoreV1().Secrets(namespace).Apply(
		applyCtx,
		secret,
		metav1.ApplyOptions{
			FieldManager: FieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeApplyFailed,
			"failed to apply secret", err,
			map[string]any{"namespace": namespace, "name": name})
	}
	return nil
}

// ListManaged implements Store.
func (s *ClientStore) ListManaged(ctx context.Context, namespace string) ([]corev1.Secret, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.SecretReadTimeout)
	defer cancel()

	list, err := s.cs.CoreV1().Secrets(namespace).List(readCtx, metav1.ListOptions{
		LabelSelector: ManagedByLabel + "=" + FieldManager,
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"could not list managed secrets", err,
			map[string]any{"namespace": namespace})
	}
	return list.Items, nil
}
