/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/

// Package scheduler runs a function on a fixed interval until the context
// is canceled.
package scheduler

import (
	"context"
	"time"
)

// ScheduledFunc is invoked on every tick. The context is the scheduler's
// context; implementations should stop promptly when it is canceled.
type ScheduledFunc func(ctx context.Context)

// Schedule invokes fn every period until ctx is canceled. It blocks, so
// callers run it in a goroutine (typically under an errgroup). The first
// invocation happens after one full period, not immediately.
func Schedule(ctx context.Context, period time.Duration, fn ScheduledFunc) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fn(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
