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
	"strings"
	"time"

	"github.com/opskit/opsync/pkg/errors"
)

// timestampLayouts are the accepted timestamp shapes, in order of
// preference. The second covers CLIs that emit numeric zone offsets
// without a colon.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// ParseTimestamp converts a vault or cluster timestamp string into a
// time.Time, attempting each accepted layout. Empty or unparsable input
// yields a TIMESTAMP_PARSE error; callers resolve that toward recreation,
// never toward a silent skip.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New(errors.ErrCodeTimestampParse, "empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewWithContext(
		errors.ErrCodeTimestampParse,
		"timestamp matches no accepted layout",
		map[string]any{"value": s},
	)
}
