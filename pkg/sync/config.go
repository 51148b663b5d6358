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

package sync

import (
	"fmt"
	"strings"

	"github.com/opskit/opsync/pkg/errors"
)

// SelectionStrategy names how sync candidates are selected from the vault.
type SelectionStrategy string

const (
	// StrategyNamespaceList asks the vault for items already filtered to
	// those tagged with the target namespace. Cheapest query; every
	// returned item is a candidate.
	StrategyNamespaceList SelectionStrategy = "namespace-list"

	// StrategyTagFanOut lists the whole vault and inspects each item's own
	// tag set, matching tags against the target namespace
	// case-insensitively. An item is processed at most once per run even
	// when several of its tags match.
	StrategyTagFanOut SelectionStrategy = "tag-fanout"
)

// SupportedStrategies returns the accepted strategy names.
func SupportedStrategies() []string {
	return []string{string(StrategyNamespaceList), string(StrategyTagFanOut)}
}

// ParseStrategy converts a strategy name into a SelectionStrategy.
// Empty input selects StrategyNamespaceList.
func ParseStrategy(s string) (SelectionStrategy, error) {
	switch SelectionStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyNamespaceList, "":
		return StrategyNamespaceList, nil
	case StrategyTagFanOut:
		return StrategyTagFanOut, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown selection strategy (supported: %s)",
				strings.Join(SupportedStrategies(), ", ")),
			map[string]any{"strategy": s})
	}
}

// Config carries one run's parameters. All configuration is explicit; the
// driver reads no environment state.
type Config struct {
	// Vault is the source vault name.
	Vault string
	// Namespace is the single target namespace for this run.
	Namespace string
	// Strategy selects how candidates are enumerated.
	Strategy SelectionStrategy
	// DryRun logs what would be applied without touching the cluster.
	DryRun bool
}

// Validate checks argument shape. Shape errors are fatal to the run, unlike
// per-item failures.
func (c Config) Validate() error {
	if c.Vault == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "vault name is required")
	}
	if c.Namespace == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "target namespace is required")
	}
	if c.Strategy != StrategyNamespaceList && c.Strategy != StrategyTagFanOut {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid selection strategy",
			map[string]any{"strategy": string(c.Strategy)})
	}
	return nil
}
