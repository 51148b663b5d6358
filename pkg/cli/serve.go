/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/opskit/opsync/pkg/k8s/client"
	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/server"
	syncpkg "github.com/opskit/opsync/pkg/sync"
	"github.com/opskit/opsync/pkg/vault"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the synchronization daemon in the foreground",
		Description: `Run the periodic sync loop with the HTTP API. Configuration comes
from flags or the matching environment variables; flags win.

Endpoints: /healthz, /readyz, /metrics, POST /v1/sync, GET /v1/status.

# Example

  opsync serve --vault prod --namespace team-a --namespace team-b \
    --sync-interval 5m --port 8080`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "vault",
				Aliases: []string{"v"},
				Sources: cli.EnvVars("OPSYNC_VAULT"),
				Usage:   "Vault name to sync from",
			},
			&cli.StringSliceFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Sources: cli.EnvVars("OPSYNC_NAMESPACES"),
				Usage:   "Namespace to sync (can be repeated)",
			},
			&cli.StringFlag{
				Name:    "strategy",
				Sources: cli.EnvVars("OPSYNC_STRATEGY"),
				Usage: fmt.Sprintf("Item selection strategy (supported values: %s)",
					syncpkg.SupportedStrategies()),
			},
			&cli.DurationFlag{
				Name:    "sync-interval",
				Sources: cli.EnvVars("OPSYNC_SYNC_INTERVAL"),
				Usage:   "Period between sync passes (default: 5m)",
			},
			&cli.IntFlag{
				Name:    "port",
				Sources: cli.EnvVars("PORT"),
				Usage:   "HTTP listen port (default: 8080)",
			},
			&cli.StringFlag{
				Name:    "op-bin",
				Sources: cli.EnvVars("OPSYNC_OP_BIN"),
				Value:   vault.DefaultBinary,
				Usage:   "Path to the vault CLI binary",
			},
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			cfg.Version = version

			if v := cmd.String("vault"); v != "" {
				cfg.Vault = v
			}
			if ns := cmd.StringSlice("namespace"); len(ns) > 0 {
				cfg.Namespaces = ns
			}
			if strategyStr := cmd.String("strategy"); strategyStr != "" {
				strategy, err := syncpkg.ParseStrategy(strategyStr)
				if err != nil {
					return err
				}
				cfg.Strategy = strategy
			}
			if interval := cmd.Duration("sync-interval"); interval > 0 {
				cfg.SyncInterval = interval
			}
			if port := cmd.Int("port"); port > 0 {
				cfg.Port = int(port)
			}

			kubeClient, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create Kubernetes client: %w", err)
			}

			runner := syncpkg.NewRunner(
				vault.NewCLI(vault.WithBinary(cmd.String("op-bin"))),
				secrets.NewStore(kubeClient),
				cfg.Vault, cfg.Namespaces, cfg.Strategy, false)

			return server.Run(ctx, cfg, runner)
		},
	}
}
