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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/opskit/opsync/pkg/defaults"
	"github.com/opskit/opsync/pkg/errors"
)

// DefaultBinary is the secrets-manager CLI executable resolved from PATH.
const DefaultBinary = "op"

// commandRunner executes the CLI and returns its stdout. Injected in tests.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// CLI is a Client backed by the secrets-manager command-line tool.
// Authentication is the CLI's concern; a failed session surfaces as a
// VAULT_QUERY error like any other call failure.
type CLI struct {
	binary  string
	timeout time.Duration
	run     commandRunner
}

// CLIOption customizes a CLI client.
type CLIOption func(*CLI)

// WithBinary overrides the CLI executable path.
func WithBinary(path string) CLIOption {
	return func(c *CLI) { c.binary = path }
}

// WithTimeout overrides the per-invocation timeout.
func WithTimeout(d time.Duration) CLIOption {
	return func(c *CLI) { c.timeout = d }
}

// withRunner substitutes the process runner; test hook.
func withRunner(run commandRunner) CLIOption {
	return func(c *CLI) { c.run = run }
}

// NewCLI creates a vault client that shells out to the secrets-manager CLI.
func NewCLI(opts ...CLIOption) *CLI {
	c := &CLI{
		binary:  DefaultBinary,
		timeout: defaults.VaultCommandTimeout,
		run:     runCommand,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List implements Client.
func (c *CLI) List(ctx context.Context, vaultName, tagFilter string) ([]ItemSummary, error) {
	args := listArgs(vaultName, tagFilter)

	out, err := c.exec(ctx, args)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeVaultQuery,
			"vault item list failed", err,
			map[string]any{"vault": vaultName, "tag": tagFilter})
	}

	var items []ItemSummary
	if err := json.Unmarshal(out, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeVaultQuery,
			"vault item list returned undecodable output", err)
	}
	return items, nil
}

// Get implements Client.
func (c *CLI) Get(ctx context.Context, vaultName, title string) (*Item, error) {
	args := getArgs(vaultName, title)

	out, err := c.exec(ctx, args)
	if err != nil {
		if isNotFoundOutput(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				"vault item not found", err,
				map[string]any{"vault": vaultName, "item": title})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeVaultQuery,
			"vault item get failed", err,
			map[string]any{"vault": vaultName, "item": title})
	}

	var item Item
	if err := json.Unmarshal(out, &item); err != nil {
		return nil, errors.Wrap(errors.ErrCodeVaultQuery,
			"vault item get returned undecodable output", err)
	}
	if item.Title == "" {
		item.Title = title
	}
	return &item, nil
}

func (c *CLI) exec(ctx context.Context, args []string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.run(callCtx, c.binary, args...)
	if callCtx.Err() == context.DeadlineExceeded {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "vault CLI call timed out", callCtx.Err())
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, errors.New(errors.ErrCodeVaultQuery, "vault CLI returned empty output")
	}
	return out, nil
}

func listArgs(vaultName, tagFilter string) []string {
	args := []string{"item", "list", "--vault", vaultName, "--format", "json"}
	if tagFilter != "" {
		args = append(args, "--tags", tagFilter)
	}
	return args
}

func getArgs(vaultName, title string) []string {
	return []string{"item", "get", title, "--vault", vaultName, "--format", "json"}
}

// isNotFoundOutput sniffs the CLI's stderr for a not-found indication.
// The CLI collapses auth, network, and missing-item failures into exit
// status 1, so this is best effort.
func isNotFoundOutput(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "isn't an item") ||
		strings.Contains(strings.ToLower(err.Error()), "not found")
}

// runCommand is the production commandRunner. Stderr is folded into the
// returned error so callers can log what the CLI complained about.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", err, msg)
	}
	return stdout.Bytes(), nil
}
