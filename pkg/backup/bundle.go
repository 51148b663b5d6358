/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/

package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/oci"
)

// InventoryFileName is the canonical inventory file inside a bundle.
const InventoryFileName = "inventory.json"

// WriteBundle writes the inventory into dir as inventory.json, creating
// the directory if needed. Returns the written file path.
func WriteBundle(inv *Inventory, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create bundle directory", err)
	}

	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode inventory", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, InventoryFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write inventory", err)
	}

	return path, nil
}

// PushBundle stages the inventory in a temporary directory and pushes it to
// the OCI registry named by ref.
func PushBundle(ctx context.Context, inv *Inventory, ref *oci.Reference, plainHTTP, insecureTLS bool) (*oci.PushResult, error) {
	dir, err := os.MkdirTemp("", "opsync-backup-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create staging directory", err)
	}
	defer os.RemoveAll(dir)

	if _, err := WriteBundle(inv, dir); err != nil {
		return nil, err
	}

	return oci.Push(ctx, oci.PushOptions{
		SourceDir:   dir,
		Reference:   ref,
		PlainHTTP:   plainHTTP,
		InsecureTLS: insecureTLS,
		Annotations: map[string]string{
			"dev.opskit.opsync.generated": inv.GeneratedAt.Format(time.RFC3339),
		},
	})
}
