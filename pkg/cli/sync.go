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
	"github.com/opskit/opsync/pkg/serializer"
	syncpkg "github.com/opskit/opsync/pkg/sync"
	"github.com/opskit/opsync/pkg/vault"
)

func syncCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sync",
		EnableShellCompletion: true,
		Usage:                 "Synchronize vault items into namespace secrets",
		Description: `Synchronize items from a vault into Kubernetes secrets in a target
namespace. Each item's last-update time is compared against the creation
time of the matching secret; missing or stale secrets are recreated from
the item's fields (notes fields are excluded).

Selection strategies:
  namespace-list  list only items tagged with the target namespace (default)
  tag-fanout      list every item in the vault and materialize those whose
                  tags include the target namespace

The run report can be output in JSON, YAML, or table format.

# Examples

Sync the team-a namespace from the prod vault:
  opsync sync --vault prod --namespace team-a

Preview without writing to the cluster:
  opsync sync --vault prod --namespace team-a --dry-run

Publish the report into a ConfigMap:
  opsync sync --vault prod --namespace team-a --output cm://team-a/opsync-report`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "vault",
				Aliases:  []string{"v"},
				Sources:  cli.EnvVars("OPSYNC_VAULT"),
				Usage:    "Vault name to sync from",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "namespace",
				Aliases:  []string{"n"},
				Sources:  cli.EnvVars("OPSYNC_NAMESPACE"),
				Usage:    "Target Kubernetes namespace",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "strategy",
				Sources: cli.EnvVars("OPSYNC_STRATEGY"),
				Value:   string(syncpkg.StrategyNamespaceList),
				Usage: fmt.Sprintf("Item selection strategy (supported values: %s)",
					syncpkg.SupportedStrategies()),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report what would change without writing to the cluster",
			},
			&cli.StringFlag{
				Name:    "op-bin",
				Sources: cli.EnvVars("OPSYNC_OP_BIN"),
				Value:   vault.DefaultBinary,
				Usage:   "Path to the vault CLI binary",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			strategy, err := syncpkg.ParseStrategy(cmd.String("strategy"))
			if err != nil {
				return err
			}

			kubeClient, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create Kubernetes client: %w", err)
			}

			syncer := syncpkg.NewSyncer(syncpkg.Config{
				Vault:     cmd.String("vault"),
				Namespace: cmd.String("namespace"),
				Strategy:  strategy,
				DryRun:    cmd.Bool("dry-run"),
			}, vault.NewCLI(vault.WithBinary(cmd.String("op-bin"))), secrets.NewStore(kubeClient))

			report, err := syncer.Run(ctx)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if err := writeOut(ctx, outFormat, cmd.String("output"), report); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if report.Failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d items failed to sync",
					report.Failed, len(report.Items)), 1)
			}
			return nil
		},
	}
}
