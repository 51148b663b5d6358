/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    *Reference
		wantErr bool
	}{
		{
			name:   "local path",
			target: "/tmp/backups",
			want:   &Reference{LocalPath: "/tmp/backups"},
		},
		{
			name:   "relative local path",
			target: "backups",
			want:   &Reference{LocalPath: "backups"},
		},
		{
			name:   "oci reference with tag",
			target: "oci://ghcr.io/opskit/backups:nightly",
			want: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "opskit/backups",
				Tag:        "nightly",
			},
		},
		{
			name:   "oci reference without tag",
			target: "oci://ghcr.io/opskit/backups",
			want: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "opskit/backups",
			},
		},
		{
			name:   "registry with port",
			target: "oci://localhost:5000/backups:v1",
			want: &Reference{
				IsOCI:      true,
				Registry:   "localhost:5000",
				Repository: "backups",
				Tag:        "v1",
			},
		},
		{
			name:    "invalid oci reference",
			target:  "oci://UPPER CASE/not valid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputTarget(tt.target)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferenceString(t *testing.T) {
	local := &Reference{LocalPath: "/tmp/out"}
	assert.Equal(t, "/tmp/out", local.String())
	assert.Empty(t, local.ImageReference())

	remote := &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "opskit/backups", Tag: "v2"}
	assert.Equal(t, "oci://ghcr.io/opskit/backups:v2", remote.String())
	assert.Equal(t, "ghcr.io/opskit/backups:v2", remote.ImageReference())

	untagged := remote.WithTag("")
	assert.Equal(t, "ghcr.io/opskit/backups", (&Reference{
		IsOCI: true, Registry: "ghcr.io", Repository: "opskit/backups",
	}).ImageReference())
	assert.Equal(t, "", untagged.Tag)
	assert.Equal(t, "v2", remote.Tag, "WithTag must not mutate the receiver")
}
