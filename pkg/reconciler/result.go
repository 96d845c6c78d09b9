package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/roster/pkg/records"
)

// RemovalReason explains why a record left the dataset.
type RemovalReason string

const (
	// RemovalDuplicate marks a donor removed by a merge pass.
	RemovalDuplicate RemovalReason = "duplicate"
	// RemovalMissingID marks a record dropped by the empty-identifier filter.
	RemovalMissingID RemovalReason = "missing-id"
)

// Removal is a record that left the dataset during a run.
type Removal struct {
	Record records.Record
	Reason RemovalReason
	// Pass is the match type of the removing pass; empty for the filter.
	Pass MatchType
}

// Result represents the outcome of a reconciliation run.
type Result struct {
	RunID    string       `json:"run_id" yaml:"run_id"`
	Pipeline PipelineType `json:"pipeline" yaml:"pipeline"`

	// Dataset is the final dataset.
	Dataset *records.Dataset `json:"-" yaml:"-"`

	// Changes holds every copied identifier, name pass entries first.
	Changes []ChangeRecord `json:"changes" yaml:"changes"`

	// Passes holds per-pass statistics in execution order.
	Passes []PassStats `json:"passes" yaml:"passes"`

	// Filter is set when the pipeline ran the empty-identifier filter.
	Filter  *FilterStats    `json:"filter,omitempty" yaml:"filter,omitempty"`
	Removed []RemovedRecord `json:"removed,omitempty" yaml:"removed,omitempty"`

	// Removals lists every removed record with the reason it was removed.
	Removals []Removal `json:"-" yaml:"-"`

	InitialRecords int `json:"initial_records" yaml:"initial_records"`
	FinalRecords   int `json:"final_records" yaml:"final_records"`

	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// NewResult creates a new result with defaults.
func NewResult(runID string, pipeline PipelineType) *Result {
	return &Result{
		RunID:    runID,
		Pipeline: pipeline,
		Changes:  []ChangeRecord{},
		Passes:   []PassStats{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and the final record count.
func (r *Result) Finalize() {
	r.FinalRecords = r.Dataset.Len()
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// TotalRemoved returns the number of records removed by all passes and the
// filter.
func (r *Result) TotalRemoved() int {
	total := 0
	for _, p := range r.Passes {
		total += p.RecordsRemoved
	}
	if r.Filter != nil {
		total += r.Filter.RecordsRemoved
	}
	return total
}

// TotalCopied returns the number of identifiers copied by all passes.
func (r *Result) TotalCopied() int {
	total := 0
	for _, p := range r.Passes {
		total += p.IDsCopied
	}
	return total
}

// ChangesByType returns the changes made by passes of one match type.
func (r *Result) ChangesByType(mt MatchType) []ChangeRecord {
	var out []ChangeRecord
	for _, c := range r.Changes {
		if c.MatchType == mt {
			out = append(out, c)
		}
	}
	return out
}

// HasChanges returns true if any identifier was copied or record removed.
func (r *Result) HasChanges() bool {
	return len(r.Changes) > 0 || r.TotalRemoved() > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return fmt.Sprintf("No duplicates found in %d records.", r.InitialRecords)
	}
	return fmt.Sprintf("Copied %d IDs and removed %d records: %d -> %d records.",
		r.TotalCopied(), r.TotalRemoved(), r.InitialRecords, r.FinalRecords)
}
