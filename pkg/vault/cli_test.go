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

package vault

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	opsyncerrors "github.com/opskit/opsync/pkg/errors"
)

func fakeRunner(output []byte, err error) (commandRunner, *[][]string) {
	var calls [][]string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return output, err
	}
	return run, &calls
}

func TestCLI_List(t *testing.T) {
	payload := `[
		{"id":"abc","title":"db-creds","tags":["automation"]},
		{"id":"def","title":"api-token","tags":["automation","automation2"]}
	]`
	run, calls := fakeRunner([]byte(payload), nil)
	c := NewCLI(withRunner(run))

	items, err := c.List(context.Background(), "cluster", "automation")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "db-creds", items[0].Title)
	assert.Equal(t, []string{"automation", "automation2"}, items[1].Tags)

	require.Len(t, *calls, 1)
	assert.Equal(t,
		[]string{"op", "item", "list", "--vault", "cluster", "--format", "json", "--tags", "automation"},
		(*calls)[0])
}

func TestCLI_ListWithoutTagFilter(t *testing.T) {
	run, calls := fakeRunner([]byte(`[]`), nil)
	c := NewCLI(withRunner(run))

	items, err := c.List(context.Background(), "cluster", "")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotContains(t, (*calls)[0], "--tags")
}

func TestCLI_ListCommandFailure(t *testing.T) {
	run, _ := fakeRunner(nil, errors.New("exit status 1: session expired"))
	c := NewCLI(withRunner(run))

	_, err := c.List(context.Background(), "cluster", "automation")
	require.Error(t, err)
	assert.Equal(t, opsyncerrors.ErrCodeVaultQuery, opsyncerrors.CodeOf(err))
}

func TestCLI_ListEmptyOutput(t *testing.T) {
	run, _ := fakeRunner([]byte("  \n"), nil)
	c := NewCLI(withRunner(run))

	_, err := c.List(context.Background(), "cluster", "")
	require.Error(t, err)
	assert.Equal(t, opsyncerrors.ErrCodeVaultQuery, opsyncerrors.CodeOf(err))
}

func TestCLI_Get(t *testing.T) {
	payload := `{
		"id": "abc",
		"title": "db-creds",
		"tags": ["automation"],
		"updated_at": "2024-01-01T00:00:00Z",
		"fields": [
			{"id": "f1", "type": "concealed", "label": "password", "value": "secret1"},
			{"id": "f2", "type": "notes", "label": "notesPlain", "value": "internal use only"}
		]
	}`
	run, calls := fakeRunner([]byte(payload), nil)
	c := NewCLI(withRunner(run))

	item, err := c.Get(context.Background(), "cluster", "db-creds")
	require.NoError(t, err)
	assert.Equal(t, "db-creds", item.Title)
	assert.Equal(t, "2024-01-01T00:00:00Z", item.UpdatedAt)
	require.Len(t, item.Fields, 2)
	assert.False(t, item.Fields[0].IsNotes())
	assert.True(t, item.Fields[1].IsNotes())

	assert.Equal(t,
		[]string{"op", "item", "get", "db-creds", "--vault", "cluster", "--format", "json"},
		(*calls)[0])
}

func TestCLI_GetNotFound(t *testing.T) {
	run, _ := fakeRunner(nil, errors.New(`exit status 1: "db-creds" isn't an item in the "cluster" vault`))
	c := NewCLI(withRunner(run))

	_, err := c.Get(context.Background(), "cluster", "db-creds")
	require.Error(t, err)
	assert.True(t, opsyncerrors.IsNotFound(err))
}

func TestCLI_GetUndecodableOutput(t *testing.T) {
	run, _ := fakeRunner([]byte("plain text, not json"), nil)
	c := NewCLI(withRunner(run))

	_, err := c.Get(context.Background(), "cluster", "db-creds")
	require.Error(t, err)
	assert.Equal(t, opsyncerrors.ErrCodeVaultQuery, opsyncerrors.CodeOf(err))
}

func TestItem_UnmarshalBothTimestampSpellings(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "camelCase",
			json: `{"title":"a","updatedAt":"2024-01-01T00:00:00Z"}`,
			want: "2024-01-01T00:00:00Z",
		},
		{
			name: "snake_case",
			json: `{"title":"a","updated_at":"2024-02-02T00:00:00Z"}`,
			want: "2024-02-02T00:00:00Z",
		},
		{
			name: "camel wins when both present",
			json: `{"title":"a","updatedAt":"2024-01-01T00:00:00Z","updated_at":"2024-02-02T00:00:00Z"}`,
			want: "2024-01-01T00:00:00Z",
		},
		{
			name: "absent",
			json: `{"title":"a"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item Item
			require.NoError(t, json.Unmarshal([]byte(tt.json), &item))
			assert.Equal(t, tt.want, item.UpdatedAt)
		})
	}
}
