/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/opskit/opsync/pkg/backup"
	"github.com/opskit/opsync/pkg/k8s/client"
	"github.com/opskit/opsync/pkg/k8s/secrets"
	"github.com/opskit/opsync/pkg/oci"
)

func backupCmd() *cli.Command {
	return &cli.Command{
		Name:                  "backup",
		EnableShellCompletion: true,
		Usage:                 "Capture a digest inventory of managed secrets",
		Description: `Build an inventory of the secrets opsync manages in one or more
namespaces: name, creation timestamp, data keys, and a SHA-256 digest per
value. Secret values are never written out.

The inventory can be written to a local directory or pushed to an OCI
registry as an artifact.

# Examples

Write the inventory to a directory:
  opsync backup --namespace team-a --output ./backups

Push the inventory to a registry:
  opsync backup --namespace team-a --namespace team-b \
    --output oci://ghcr.io/opskit/backups:nightly`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "namespace",
				Aliases:  []string{"n"},
				Sources:  cli.EnvVars("OPSYNC_NAMESPACES"),
				Usage:    "Namespace to inventory (can be repeated)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Output directory or OCI reference (oci://registry/repo:tag)",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry",
			},
			&cli.BoolFlag{
				Name:  "insecure",
				Usage: "Skip TLS certificate verification for the registry",
			},
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ref, err := oci.ParseOutputTarget(cmd.String("output"))
			if err != nil {
				return err
			}

			kubeClient, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to create Kubernetes client: %w", err)
			}

			inv, err := backup.NewBuilder(secrets.NewStore(kubeClient)).
				Build(ctx, cmd.StringSlice("namespace"))
			if err != nil {
				return fmt.Errorf("failed to build inventory: %w", err)
			}

			if !ref.IsOCI {
				path, err := backup.WriteBundle(inv, ref.LocalPath)
				if err != nil {
					return err
				}
				slog.Info("backup written", "path", path, "secrets", inv.Count)
				return nil
			}

			result, err := backup.PushBundle(ctx, inv, ref,
				cmd.Bool("plain-http"), cmd.Bool("insecure"))
			if err != nil {
				return err
			}
			slog.Info("backup pushed",
				"reference", result.Reference,
				"digest", result.Digest,
				"secrets", inv.Count)
			return nil
		},
	}
}
