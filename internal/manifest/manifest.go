// Package manifest accumulates per-instance outcomes and aggregate
// counts for one migration run. The manifest is the authoritative record
// of what happened: which instances succeeded, which were skipped and
// why, and which succeeded with data loss.
package manifest

import (
	"sort"
	"sync"

	"graph-migrator/internal/diagnostic"
)

// Status is the outcome class of one instance.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusSkipped   Status = "skipped-no-mapping"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one v3 resource instance.
type Outcome struct {
	// V3ID is the v3 instance identifier.
	V3ID string `json:"v3_id"`
	// Model is the raw v3 model name the instance carried.
	Model string `json:"model"`
	// V4ID is the assigned v4 identifier; empty unless succeeded.
	V4ID string `json:"v4_id,omitempty"`
	// V4Model is the v4 model name; empty unless succeeded.
	V4Model string `json:"v4_model,omitempty"`
	// Status classifies the outcome.
	Status Status `json:"status"`
	// Reason explains skips and failures.
	Reason string `json:"reason,omitempty"`
	// Warnings are non-fatal conditions recorded for this instance
	// (dropped attributes, transform misses, dangling references).
	Warnings []diagnostic.Diagnostic `json:"warnings,omitempty"`
}

// Run is the concurrency-safe manifest accumulator. Phase-one workers
// append outcomes from any goroutine; the resolution pass attaches
// further warnings to existing outcomes.
type Run struct {
	mu       sync.Mutex
	order    []string
	outcomes map[string]*Outcome
}

// NewRun creates an empty manifest.
func NewRun() *Run {
	return &Run{outcomes: make(map[string]*Outcome)}
}

// Add records one outcome. An outcome per instance is recorded at most
// once; later warnings attach via AddWarning.
func (r *Run) Add(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.outcomes[o.V3ID]; ok {
		return
	}

	r.order = append(r.order, o.V3ID)
	copied := o
	r.outcomes[o.V3ID] = &copied
}

// AddWarning attaches a warning to an already-recorded outcome. Unknown
// instances are ignored; a warning cannot create an outcome.
func (r *Run) AddWarning(v3ID string, d diagnostic.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.outcomes[v3ID]; ok {
		o.Warnings = append(o.Warnings, d)
	}
}

// Outcome returns a copy of the outcome recorded for an instance.
func (r *Run) Outcome(v3ID string) (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.outcomes[v3ID]
	if !ok {
		return Outcome{}, false
	}

	return *o, true
}

// Report is the serializable snapshot of a finished run.
type Report struct {
	// Counts aggregates outcomes and warnings.
	Counts Counts `json:"counts"`
	// Instances lists every outcome, ordered by v3 identifier.
	Instances []Outcome `json:"instances"`
}

// Counts holds the aggregate tallies.
type Counts struct {
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Warnings  int `json:"warnings"`
}

// Report snapshots the manifest. Ordering is by v3 identifier so two
// runs over the same input serialize identically.
func (r *Run) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := Report{Instances: make([]Outcome, 0, len(r.order))}

	ids := append([]string(nil), r.order...)
	sort.Strings(ids)

	for _, id := range ids {
		o := *r.outcomes[id]
		rep.Instances = append(rep.Instances, o)

		switch o.Status {
		case StatusSucceeded:
			rep.Counts.Succeeded++
		case StatusSkipped:
			rep.Counts.Skipped++
		case StatusFailed:
			rep.Counts.Failed++
		}

		rep.Counts.Warnings += len(o.Warnings)
	}

	return rep
}
