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
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/opskit/opsync/pkg/defaults"
	apperrors "github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/serializer"
	syncpkg "github.com/opskit/opsync/pkg/sync"
)

// Runner executes one synchronization pass across all configured targets.
type Runner interface {
	Run(ctx context.Context) ([]*syncpkg.Report, error)
}

// RunSummary captures the outcome of the most recent sync pass.
type RunSummary struct {
	Completed time.Time         `json:"completed" yaml:"completed"`
	Reports   []*syncpkg.Report `json:"reports" yaml:"reports"`
	Error     string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// StatusResponse is the body of GET /v1/status.
type StatusResponse struct {
	Name         string      `json:"name"`
	Version      string      `json:"version"`
	Ready        bool        `json:"ready"`
	Vault        string      `json:"vault"`
	Namespaces   []string    `json:"namespaces"`
	Strategy     string      `json:"strategy"`
	SyncInterval string      `json:"syncInterval"`
	LastRun      *RunSummary `json:"lastRun,omitempty"`
}

// runSync executes one sync pass under the run timeout and records the
// outcome. Passes are serialized so a manual trigger cannot overlap the
// scheduled loop.
func (s *Server) runSync(ctx context.Context) *RunSummary {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, defaults.SyncRunTimeout)
	defer cancel()

	reports, err := s.runner.Run(runCtx)

	summary := &RunSummary{
		Completed: time.Now().UTC(),
		Reports:   reports,
	}
	if err != nil {
		summary.Error = err.Error()
	}

	s.mu.Lock()
	s.lastRun = summary
	s.mu.Unlock()

	if err != nil {
		slog.Error("sync pass completed with errors", "error", err)
	}

	return summary
}

// handleSync handles POST /v1/sync: trigger an immediate pass and return
// its summary.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	summary := s.runSync(r.Context())
	if summary.Error != "" {
		writeError(w, r, http.StatusServiceUnavailable, apperrors.ErrCodeUnavailable,
			"sync pass completed with errors", true, map[string]any{"error": summary.Error})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, summary)
}

// handleStatus handles GET /v1/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	s.mu.RLock()
	resp := StatusResponse{
		Name:         s.config.Name,
		Version:      s.config.Version,
		Ready:        s.ready,
		Vault:        s.config.Vault,
		Namespaces:   s.config.Namespaces,
		Strategy:     string(s.config.Strategy),
		SyncInterval: s.config.SyncInterval.String(),
		LastRun:      s.lastRun,
	}
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}
