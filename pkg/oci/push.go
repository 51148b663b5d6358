/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	v1 "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
	"oras.land/oras-go/v2/registry/remote/retry"

	apperrors "github.com/opskit/opsync/pkg/errors"
)

const (
	// ArtifactType identifies backup bundle artifacts in OCI registries.
	ArtifactType = "application/vnd.opskit.opsync.backup"

	// MediaTypeInventory is the layer media type for inventory files.
	MediaTypeInventory = "application/vnd.opskit.opsync.inventory.v1+json"

	// DefaultTag is applied when the output reference carries no tag.
	DefaultTag = "latest"
)

// PushOptions configures a backup bundle push.
type PushOptions struct {
	// SourceDir is the local directory containing the bundle files.
	SourceDir string
	// Reference is the parsed OCI target (must have IsOCI true).
	Reference *Reference
	// PlainHTTP uses HTTP instead of HTTPS for the registry.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are added to the artifact manifest.
	Annotations map[string]string
}

// PushResult describes a completed push.
type PushResult struct {
	// Reference is the pushed image reference (registry/repo:tag).
	Reference string `json:"reference" yaml:"reference"`
	// Digest is the manifest digest of the pushed artifact.
	Digest string `json:"digest" yaml:"digest"`
}

// Push packages the files under opts.SourceDir as an OCI artifact and pushes
// it to the registry named in opts.Reference.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil || !opts.Reference.IsOCI {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "push target is not an OCI reference")
	}

	ref := opts.Reference
	if ref.Tag == "" {
		ref = ref.WithTag(DefaultTag)
	}

	store, err := file.New(opts.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer store.Close()

	descs, err := addBundleFiles(ctx, store, opts.SourceDir)
	if err != nil {
		return nil, err
	}
	if len(descs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "bundle directory contains no files")
	}

	packOpts := oras.PackManifestOptions{
		Layers:              descs,
		ManifestAnnotations: opts.Annotations,
	}
	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	if err := store.Tag(ctx, manifest, ref.Tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest", err)
	}

	repo, err := newRepository(ref, opts.PlainHTTP, opts.InsecureTLS)
	if err != nil {
		return nil, err
	}

	pushed, err := oras.Copy(ctx, store, ref.Tag, repo, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push artifact", err)
	}

	slog.Info("pushed backup bundle",
		"reference", ref.ImageReference(),
		"digest", pushed.Digest.String(),
		"layers", len(descs))

	return &PushResult{
		Reference: ref.ImageReference(),
		Digest:    pushed.Digest.String(),
	}, nil
}

// addBundleFiles registers every regular file under dir with the file store
// and returns the layer descriptors. Nested directories are walked; the
// layer name is the path relative to dir.
func addBundleFiles(ctx context.Context, store *file.Store, dir string) ([]v1.Descriptor, error) {
	var descs []v1.Descriptor
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		mediaType := MediaTypeInventory
		if filepath.Ext(rel) != ".json" {
			mediaType = "application/octet-stream"
		}
		desc, err := store.Add(ctx, rel, mediaType, path)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
		descs = append(descs, desc)
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to add bundle files", err)
	}
	return descs, nil
}

// newRepository builds an authenticated remote repository client for ref,
// using the local docker credential store when available.
func newRepository(ref *Reference, plainHTTP, insecureTLS bool) (*remote.Repository, error) {
	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", ref.Registry, ref.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid repository reference", err)
	}
	repo.PlainHTTP = plainHTTP

	client := &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
	}
	if insecureTLS {
		client.Client = &http.Client{
			Transport: retry.NewTransport(&http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}),
		}
	}

	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable, pushing anonymously", "error", err)
	} else {
		client.Credential = credentials.Credential(credStore)
	}
	repo.Client = client

	return repo, nil
}
