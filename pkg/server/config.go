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

package server

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/opskit/opsync/pkg/defaults"
	apperrors "github.com/opskit/opsync/pkg/errors"
	syncpkg "github.com/opskit/opsync/pkg/sync"
)

// Config holds daemon configuration.
type Config struct {
	// Server identity
	Name    string
	Version string

	// Listener
	Address string
	Port    int

	// Rate limiting for the API endpoints
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Sync targets
	Vault      string
	Namespaces []string
	Strategy   syncpkg.SelectionStrategy

	// SyncInterval is the period between scheduled sync passes.
	SyncInterval time.Duration

	// Logging
	LogLevel slog.Level
}

// DefaultConfig returns defaults overridden by environment variables:
// PORT, LOG_LEVEL, SHUTDOWN_TIMEOUT_SECONDS, OPSYNC_VAULT,
// OPSYNC_NAMESPACES (comma-separated), OPSYNC_STRATEGY, and
// OPSYNC_SYNC_INTERVAL (Go duration).
func DefaultConfig() *Config {
	cfg := &Config{
		Name:            "opsyncd",
		Version:         "dev",
		Address:         "",
		Port:            8080,
		RateLimit:       10, // 10 req/s
		RateLimitBurst:  20, // burst of 20
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		Strategy:        syncpkg.StrategyNamespaceList,
		SyncInterval:    defaults.SyncInterval,
		LogLevel:        slog.LevelInfo,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevelStr)); err == nil {
			cfg.LogLevel = level
		}
	}

	// Allow customization of shutdown timeout to match K8s eviction grace period
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	if v := os.Getenv("OPSYNC_VAULT"); v != "" {
		cfg.Vault = v
	}

	if nsList := os.Getenv("OPSYNC_NAMESPACES"); nsList != "" {
		cfg.Namespaces = splitNamespaces(nsList)
	}

	if strategyStr := os.Getenv("OPSYNC_STRATEGY"); strategyStr != "" {
		if strategy, err := syncpkg.ParseStrategy(strategyStr); err == nil {
			cfg.Strategy = strategy
		} else {
			slog.Warn("ignoring invalid OPSYNC_STRATEGY", "value", strategyStr)
		}
	}

	if intervalStr := os.Getenv("OPSYNC_SYNC_INTERVAL"); intervalStr != "" {
		if interval, err := time.ParseDuration(intervalStr); err == nil && interval > 0 {
			cfg.SyncInterval = interval
		} else {
			slog.Warn("ignoring invalid OPSYNC_SYNC_INTERVAL", "value", intervalStr)
		}
	}

	return cfg
}

// Validate checks that the config names at least one sync target.
func (c *Config) Validate() error {
	if c.Vault == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "vault name is required (OPSYNC_VAULT)")
	}
	if len(c.Namespaces) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "at least one namespace is required (OPSYNC_NAMESPACES)")
	}
	if c.SyncInterval <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "sync interval must be positive")
	}
	return nil
}

// splitNamespaces splits a comma-separated namespace list, trimming
// whitespace and dropping empty entries.
func splitNamespaces(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if ns := strings.TrimSpace(part); ns != "" {
			out = append(out, ns)
		}
	}
	return out
}
