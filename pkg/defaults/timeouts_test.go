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

package defaults

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutsArePositive(t *testing.T) {
	timeouts := map[string]time.Duration{
		"VaultCommandTimeout":   VaultCommandTimeout,
		"SecretReadTimeout":     SecretReadTimeout,
		"SecretApplyTimeout":    SecretApplyTimeout,
		"ConfigMapWriteTimeout": ConfigMapWriteTimeout,
		"ServerReadTimeout":     ServerReadTimeout,
		"ServerWriteTimeout":    ServerWriteTimeout,
		"ServerIdleTimeout":     ServerIdleTimeout,
		"ServerShutdownTimeout": ServerShutdownTimeout,
		"SyncRunTimeout":        SyncRunTimeout,
		"SyncInterval":          SyncInterval,
	}

	for name, d := range timeouts {
		assert.Positive(t, d, name)
	}
}

func TestTimeoutOrdering(t *testing.T) {
	// Per-call timeouts must fit inside a single run.
	assert.Less(t, VaultCommandTimeout, SyncRunTimeout)
	assert.Less(t, SecretApplyTimeout, SyncRunTimeout)
}
