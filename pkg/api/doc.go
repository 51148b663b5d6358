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

// Package api boots the opsyncd daemon.
//
// It is a thin wrapper around pkg/server: it configures structured logging,
// builds the vault client and secret store from environment configuration,
// and delegates lifecycle management (HTTP API, sync loop, graceful
// shutdown) to the server package.
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/opskit/opsync/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Configuration comes from the environment: OPSYNC_VAULT,
// OPSYNC_NAMESPACES, OPSYNC_STRATEGY, OPSYNC_SYNC_INTERVAL, PORT,
// LOG_LEVEL, and OPSYNC_OP_BIN.
package api
