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

package api

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/opskit/opsync/pkg/k8s/client"
	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/logging"
	"github.com/opskit/opsync/pkg/server"
	syncpkg "github.com/opskit/opsync/pkg/sync"
	"github.com/opskit/opsync/pkg/vault"
)

const (
	name           = "opsyncd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/opskit/opsync/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the daemon and blocks until shutdown. It configures logging,
// wires the sync runner from environment configuration, and handles
// SIGINT/SIGTERM gracefully.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.DefaultConfig()
	cfg.Name = name
	cfg.Version = version

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := cfg.Validate(); err != nil {
		return err
	}

	kubeClient, _, err := client.GetKubeClient()
	if err != nil {
		return err
	}

	var vaultOpts []vault.CLIOption
	if bin := os.Getenv("OPSYNC_OP_BIN"); bin != "" {
		vaultOpts = append(vaultOpts, vault.WithBinary(bin))
	}

	runner := syncpkg.NewRunner(
		vault.NewCLI(vaultOpts...),
		secrets.NewStore(kubeClient),
		cfg.Vault, cfg.Namespaces, cfg.Strategy, false)

	if err := server.Run(ctx, cfg, runner); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
