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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	syncpkg "github.com/opskit/opsync/pkg/sync"
)

type fakeRunner struct {
	reports []*syncpkg.Report
	err     error
	calls   atomic.Int64
}

func (f *fakeRunner) Run(context.Context) ([]*syncpkg.Report, error) {
	f.calls.Add(1)
	return f.reports, f.err
}

func testConfig() *Config {
	return &Config{
		Name:            "opsyncd",
		Version:         "test",
		Port:            0,
		RateLimit:       rate.Limit(100),
		RateLimitBurst:  100,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		Vault:           "prod",
		Namespaces:      []string{"team-a"},
		Strategy:        syncpkg.StrategyNamespaceList,
		SyncInterval:    time.Minute,
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := NewServer(testConfig(), &fakeRunner{})
	handler := s.setupRoutes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)

	// Not ready until Start runs.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSync(t *testing.T) {
	runner := &fakeRunner{
		reports: []*syncpkg.Report{{Vault: "prod", Namespace: "team-a", Synced: 1}},
	}
	s := NewServer(testConfig(), runner)
	handler := s.setupRoutes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), runner.calls.Load())

	var summary RunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Reports, 1)
	assert.Equal(t, "team-a", summary.Reports[0].Namespace)
	assert.Empty(t, summary.Error)
}

func TestHandleSyncMethodNotAllowed(t *testing.T) {
	s := NewServer(testConfig(), &fakeRunner{})
	handler := s.setupRoutes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "METHOD_NOT_ALLOWED", string(errResp.Code))
	assert.NotEmpty(t, errResp.RequestID)
}

func TestHandleSyncRunnerError(t *testing.T) {
	runner := &fakeRunner{err: assert.AnError}
	s := NewServer(testConfig(), runner)
	handler := s.setupRoutes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// The failed pass is still recorded as the last run.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.NotNil(t, status.LastRun)
	assert.NotEmpty(t, status.LastRun.Error)
}

func TestHandleStatus(t *testing.T) {
	s := NewServer(testConfig(), &fakeRunner{})
	handler := s.setupRoutes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "opsyncd", status.Name)
	assert.Equal(t, "prod", status.Vault)
	assert.Equal(t, []string{"team-a"}, status.Namespaces)
	assert.Equal(t, "namespace-list", status.Strategy)
	assert.Nil(t, status.LastRun, "no run recorded yet")
}

func TestRequestIDMiddleware(t *testing.T) {
	s := NewServer(testConfig(), &fakeRunner{})

	var gotID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(contextKeyRequestID).(string)
		w.WriteHeader(http.StatusOK)
	})

	// Generated when absent.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, rec.Header().Get("X-Request-Id"))

	// Preserved when a valid UUID is provided.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "ddfa4a1e-9192-4a61-8f5b-0d4f89f6a3a1")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, "ddfa4a1e-9192-4a61-8f5b-0d4f89f6a3a1", gotID)

	// Replaced when not a UUID.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.NotEqual(t, "not-a-uuid", gotID)
	assert.NotEmpty(t, gotID)
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	s := NewServer(cfg, &fakeRunner{})

	handler := s.requestIDMiddleware(s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := NewServer(testConfig(), &fakeRunner{})

	handler := s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "INTERNAL", string(errResp.Code))
}

func TestResponseWriterStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, err := rw.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.Status())

	// Second header write is ignored.
	rw.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusOK, rw.Status())
}
