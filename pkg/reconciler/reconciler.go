// Package reconciler merges duplicate roster records.
//
// A run is a pipeline of Group Merger passes. Each pass groups records by a
// normalized key (full name, then email), copies the member card ID from rows
// that have one to rows of the same group that lack one, and drops the rows
// made redundant. The three-pass pipeline finally drops every record that
// still has no identifier and keeps an audit of them.
//
// Every pass takes ownership of the previous pass's output and returns a new
// dataset; the dataset handed to Run is never modified.
package reconciler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/records"
)

// Reconciler runs a deduplication pipeline over a dataset.
type Reconciler interface {
	// Run executes the configured pipeline. The context is checked between
	// passes; a canceled run returns no result.
	Run(ctx context.Context, ds *records.Dataset) (*Result, error)

	// Pipeline returns the configured pipeline type.
	Pipeline() PipelineType

	// Passes returns the merge passes the pipeline runs, in order.
	Passes() []Pass
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	pipeline PipelineType
	passes   []Pass
	progress ProgressFunc
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	namePolicy, emailPolicy := options.pipeline.defaultPolicies()
	if options.namePolicy != "" {
		namePolicy = options.namePolicy
	}
	if options.emailPolicy != "" {
		emailPolicy = options.emailPolicy
	}

	passes := []Pass{NamePass(namePolicy)}
	if options.pipeline.UsesEmail() {
		passes = append(passes, EmailPass(emailPolicy))
	}

	return &reconciler{
		pipeline: options.pipeline,
		passes:   passes,
		progress: options.progress,
	}, nil
}

// Pipeline returns the configured pipeline type.
func (r *reconciler) Pipeline() PipelineType {
	return r.pipeline
}

// Passes returns a copy of the configured passes.
func (r *reconciler) Passes() []Pass {
	return append([]Pass(nil), r.passes...)
}

// Run executes the pipeline.
func (r *reconciler) Run(ctx context.Context, ds *records.Dataset) (*Result, error) {
	if ds == nil {
		return nil, &errors.ValidationError{
			Field:   "dataset",
			Message: "cannot be nil",
		}
	}

	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRun(ctx, runID)
	}
	logger := logging.FromContext(ctx)

	result := NewResult(runID, r.pipeline)
	result.InitialRecords = ds.Len()

	logger.Info().
		Str("pipeline", r.pipeline.String()).
		Int("records", ds.Len()).
		Msg("Starting reconciliation")

	current := ds.Clone()
	for _, pass := range r.passes {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}
		current = r.runPass(logging.WithPass(ctx, pass.MatchType.String()), pass, current, result)
	}

	if r.pipeline.Filters() {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}
		current = r.runFilter(logging.WithPass(ctx, "filter"), current, result)
	}

	result.Dataset = current
	result.Finalize()

	logger.Info().
		Int("initial_records", result.InitialRecords).
		Int("final_records", result.FinalRecords).
		Int("ids_copied", result.TotalCopied()).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")

	return result, nil
}

// runPass merges one pass and folds its outcome into result.
func (r *reconciler) runPass(ctx context.Context, pass Pass, ds *records.Dataset, result *Result) *records.Dataset {
	logger := logging.FromContext(ctx)

	var progress ProgressFunc
	if r.progress != nil {
		progress = func(current, total int, label string) {
			r.progress(current, total, fmt.Sprintf("%s: %s", pass.MatchType, label))
		}
	}

	pr := Merge(ds, pass, progress)

	for _, change := range pr.Changes {
		logger.Debug().
			Str("key", change.Key).
			Int("source_row", change.SourceRow).
			Int("destination_row", change.DestinationRow).
			Str("member_id", change.MemberID).
			Msg("Copied member ID")
	}
	for _, rec := range pr.Removed {
		logger.Debug().
			Int("row", rec.Row()).
			Str("member_id", rec.MemberID).
			Msg("Removed duplicate record")
		result.Removals = append(result.Removals, Removal{
			Record: rec,
			Reason: RemovalDuplicate,
			Pass:   pass.MatchType,
		})
	}

	logPassStats(logger, pr.Stats)

	result.Changes = append(result.Changes, pr.Changes...)
	result.Passes = append(result.Passes, pr.Stats)
	return pr.Dataset
}

// runFilter drops records still lacking an identifier.
func (r *reconciler) runFilter(ctx context.Context, ds *records.Dataset, result *Result) *records.Dataset {
	logger := logging.FromContext(ctx)

	fr := filterMissingIDs(ds)
	for i, rec := range fr.removed {
		entry := fr.audit[i]
		logger.Info().
			Int("row", entry.Row).
			Str("first_name", entry.FirstName).
			Str("last_name", entry.LastName).
			Str("email", entry.Email).
			Msg("Removed record without member ID")
		result.Removals = append(result.Removals, Removal{
			Record: rec,
			Reason: RemovalMissingID,
		})
	}

	logger.Info().
		Int("total_records", fr.stats.TotalRecords).
		Int("records_removed", fr.stats.RecordsRemoved).
		Msg("Filtered records without member ID")

	stats := fr.stats
	result.Filter = &stats
	result.Removed = fr.audit
	return fr.dataset
}

func logPassStats(logger *zerolog.Logger, stats PassStats) {
	logger.Info().
		Str("policy", stats.Policy.String()).
		Int("total_records", stats.TotalRecords).
		Int("unique_keys", stats.UniqueKeys).
		Int("matches_found", stats.MatchesFound).
		Int("ids_copied", stats.IDsCopied).
		Int("records_removed", stats.RecordsRemoved).
		Msgf("%s pass complete", stats.MatchType)
}

func checkCanceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return nil
}
