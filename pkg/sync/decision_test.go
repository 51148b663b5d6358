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
	"testing"
	"time"
)

func TestNeedsUpdate(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func(*fakeStore)
		updatedAt string
		want      bool
	}{
		{
			name:      "missing destination",
			setup:     func(_ *fakeStore) {},
			updatedAt: "2024-01-01T00:00:00Z",
			want:      true,
		},
		{
			name: "creation time unretrievable",
			setup: func(fs *fakeStore) {
				fs.createErr = errors.New("api unavailable")
			},
			updatedAt: "2024-01-01T00:00:00Z",
			want:      true,
		},
		{
			name: "source older than destination",
			setup: func(fs *fakeStore) {
				fs.put("automation", "db-creds", created, nil)
			},
			updatedAt: "2024-01-01T00:00:00Z",
			want:      false,
		},
		{
			name: "source newer than destination",
			setup: func(fs *fakeStore) {
				fs.put("automation", "db-creds", created, nil)
			},
			updatedAt: "2024-06-01T00:00:00Z",
			want:      true,
		},
		{
			name: "equal timestamps are fresh",
			setup: func(fs *fakeStore) {
				fs.put("automation", "db-creds", created, nil)
			},
			updatedAt: "2024-03-01T00:00:00Z",
			want:      false,
		},
		{
			name: "unparsable source timestamp",
			setup: func(fs *fakeStore) {
				fs.put("automation", "db-creds", created, nil)
			},
			updatedAt: "last tuesday",
			want:      true,
		},
		{
			name: "zero destination creation time",
			setup: func(fs *fakeStore) {
				fs.put("automation", "db-creds", time.Time{}, nil)
			},
			updatedAt: "2024-01-01T00:00:00Z",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeStore()
			tt.setup(fs)

			got := needsUpdate(context.Background(), fs, "automation", "db-creds", tt.updatedAt)
			if got != tt.want {
				t.Errorf("needsUpdate() = %v, want %v", got, tt.want)
			}
		})
	}
}
