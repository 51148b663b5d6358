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
	"strings"
)

// FieldKindNotes marks free-text note fields, which are never materialized
// into secret data.
const FieldKindNotes = "notes"

// Field is one labeled value on a vault item.
type Field struct {
	ID    string `json:"id"`
	Kind  string `json:"type"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// IsNotes reports whether the field is a note rather than secret data.
func (f Field) IsNotes() bool {
	return strings.EqualFold(f.Kind, FieldKindNotes)
}

// ItemSummary is the list-operation view of an item.
type ItemSummary struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}

// Item is one credential record in a vault. Title doubles as the destination
// secret name. UpdatedAt is kept as the raw timestamp string; it may be empty
// when the vault never recorded a modification time.
type Item struct {
	ID        string
	Title     string
	Tags      []string
	UpdatedAt string
	Fields    []Field
}

// itemWire mirrors the CLI's JSON document. Both updatedAt and updated_at
// spellings occur in the wild depending on CLI version.
type itemWire struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Tags           []string `json:"tags"`
	UpdatedAtCamel string   `json:"updatedAt"`
	UpdatedAtSnake string   `json:"updated_at"`
	Fields         []Field  `json:"fields"`
}

// UnmarshalJSON decodes an item tolerating both modification-time spellings.
func (i *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	i.ID = w.ID
	i.Title = w.Title
	i.Tags = w.Tags
	i.Fields = w.Fields
	i.UpdatedAt = w.UpdatedAtCamel
	if i.UpdatedAt == "" {
		i.UpdatedAt = w.UpdatedAtSnake
	}
	return nil
}

// Client is the read-only vault boundary. Implementations must be safe for
// sequential reuse across items within a run.
type Client interface {
	// List enumerates items in the vault, optionally filtered to those
	// carrying the given tag. An empty tagFilter lists everything.
	List(ctx context.Context, vaultName, tagFilter string) ([]ItemSummary, error)

	// Get fetches the full record for one item by title.
	Get(ctx context.Context, vaultName, title string) (*Item, error)
}
