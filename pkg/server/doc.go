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

// Package server implements the opsyncd HTTP API and the periodic sync
// loop.
//
// Endpoints:
//
//	GET  /healthz   liveness probe
//	GET  /readyz    readiness probe
//	GET  /metrics   Prometheus metrics
//	POST /v1/sync   trigger an immediate sync pass (rate limited)
//	GET  /v1/status daemon status and last run summary
//
// The sync loop runs on a fixed interval alongside the HTTP listener; both
// shut down together on SIGINT/SIGTERM. When running under systemd the
// daemon sends READY=1 once the listener is up.
package server
