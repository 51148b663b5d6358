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

import "time"

// ItemStatus is the per-item outcome of one run.
type ItemStatus string

const (
	// StatusSynced means the destination secret was (re)created.
	StatusSynced ItemStatus = "synced"
	// StatusUpToDate means the destination was fresh and left untouched.
	StatusUpToDate ItemStatus = "up-to-date"
	// StatusSkipped means the item produced no materializable data.
	StatusSkipped ItemStatus = "skipped"
	// StatusFailed means the item's fetch or apply failed; the run continued.
	StatusFailed ItemStatus = "failed"
)

// ItemResult describes what happened to one item during a run.
type ItemResult struct {
	Title     string     `json:"title" yaml:"title"`
	Namespace string     `json:"namespace" yaml:"namespace"`
	Status    ItemStatus `json:"status" yaml:"status"`
	Reason    string     `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Report is the aggregate outcome of one sync run. Failed counts per-item
// failures; callers must surface Failed > 0 as a non-zero process exit.
type Report struct {
	RunID     string            `json:"runId" yaml:"runId"`
	Vault     string            `json:"vault" yaml:"vault"`
	Namespace string            `json:"namespace" yaml:"namespace"`
	Strategy  SelectionStrategy `json:"strategy" yaml:"strategy"`
	DryRun    bool              `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Started   time.Time         `json:"started" yaml:"started"`
	Duration  time.Duration     `json:"duration" yaml:"duration"`
	Synced    int               `json:"synced" yaml:"synced"`
	UpToDate  int               `json:"upToDate" yaml:"upToDate"`
	Skipped   int               `json:"skipped" yaml:"skipped"`
	Failed    int               `json:"failed" yaml:"failed"`
	Items     []ItemResult      `json:"items" yaml:"items"`
}

// record appends an item outcome and bumps the matching counter.
func (r *Report) record(res ItemResult) {
	r.Items = append(r.Items, res)
	switch res.Status {
	case StatusSynced:
		r.Synced++
	case StatusUpToDate:
		r.UpToDate++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}
