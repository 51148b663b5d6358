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

import "time"

// Vault CLI timeouts for external secrets-manager calls.
const (
	// VaultCommandTimeout bounds a single vault CLI invocation.
	// Without it a hung CLI call stalls the whole run.
	VaultCommandTimeout = 30 * time.Second
)

// Kubernetes timeouts for cluster API operations.
const (
	// SecretReadTimeout is the timeout for reading destination secrets.
	SecretReadTimeout = 15 * time.Second

	// SecretApplyTimeout is the timeout for server-side apply of secrets.
	SecretApplyTimeout = 30 * time.Second

	// ConfigMapWriteTimeout is the timeout for writing reports to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// Server timeouts for the opsyncd HTTP server.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Sync timeouts and intervals.
const (
	// SyncRunTimeout bounds a full sync run, one-shot or scheduled.
	SyncRunTimeout = 10 * time.Minute

	// SyncInterval is the default period between scheduled daemon runs.
	SyncInterval = 5 * time.Minute
)
