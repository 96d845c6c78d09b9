// Package roster provides the main entry point for membership roster
// deduplication.
//
// A Client loads a roster exported from a point-of-sale system, merges
// duplicate member records by name and email, and writes the cleaned roster
// back out. Records that carry a member card ID donate it to records of the
// same person that lack one, and the redundant rows are dropped.
//
// Example usage:
//
//	client, err := roster.New(
//	    roster.WithPipeline(reconciler.PipelineThreePass),
//	    roster.WithColumnMapping(map[string]string{"Member Card ID": "Card #"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnRecordRemoved(func(rec records.Record, reason reconciler.RemovalReason) {
//	    log.Printf("row %d removed: %s", rec.Row(), reason)
//	})
//
//	result, err := client.Process(ctx, "export.xlsx", "processed_roster.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package roster

import (
	"context"
	"slices"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/records"
	"github.com/agentstation/roster/pkg/sheet"
)

// Compile-time interface check.
var _ Client = (*client)(nil)

// Client is the public interface for reconciling rosters.
type Client interface {
	// Load reads and validates a roster file.
	Load(ctx context.Context, path string) (*records.Dataset, error)

	// Reconcile runs the configured pipeline over a dataset.
	Reconcile(ctx context.Context, ds *records.Dataset) (*reconciler.Result, error)

	// Process loads in, reconciles it and writes the result to out. An empty
	// out skips writing.
	Process(ctx context.Context, in, out string) (*reconciler.Result, error)

	// Validate reports which required columns a file is missing. It fails
	// only when the file cannot be read.
	Validate(ctx context.Context, path string) (*Validation, error)

	// Pipeline returns the configured pipeline type.
	Pipeline() reconciler.PipelineType

	// RequiredColumns returns the columns the configured pipeline needs.
	RequiredColumns() []string

	// Event hooks
	OnIDCopied(fn IDCopiedHook)
	OnRecordRemoved(fn RecordRemovedHook)
}

// Validation describes whether a file has the columns a pipeline needs.
type Validation struct {
	Path      string   `json:"path" yaml:"path"`
	Header    []string `json:"header" yaml:"header"`
	Required  []string `json:"required" yaml:"required"`
	Missing   []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Available []string `json:"available" yaml:"available"`
}

// Valid returns true if no required column is missing.
func (v *Validation) Valid() bool {
	return len(v.Missing) == 0
}

// client is the default Client implementation.
type client struct {
	config     *config
	reconciler reconciler.Reconciler
	hooks      *hooks
}

// New creates a new roster client with the given options.
func New(opts ...Option) (Client, error) {
	cfg, err := defaultConfig().apply(opts...)
	if err != nil {
		return nil, err
	}

	r, err := reconciler.New(cfg.reconcilerOptions()...)
	if err != nil {
		return nil, err
	}

	return &client{
		config:     cfg,
		reconciler: r,
		hooks:      newHooks(),
	}, nil
}

func (c *client) context(ctx context.Context) context.Context {
	if c.config.logger != nil {
		ctx = logging.WithLogger(ctx, c.config.logger)
	}
	return ctx
}

func (c *client) sheetOptions() []sheet.Option {
	opts := []sheet.Option{sheet.WithRequiredColumns(c.RequiredColumns())}
	if c.config.sheet != "" {
		opts = append(opts, sheet.WithSheet(c.config.sheet))
	}
	if len(c.config.mapping) > 0 {
		opts = append(opts, sheet.WithColumnMapping(c.config.mapping))
	}
	return opts
}

// Pipeline returns the configured pipeline type.
func (c *client) Pipeline() reconciler.PipelineType {
	return c.reconciler.Pipeline()
}

// RequiredColumns returns the columns the configured pipeline needs.
func (c *client) RequiredColumns() []string {
	return records.RequiredColumns(c.Pipeline().UsesEmail())
}

// OnIDCopied registers a callback for copied identifiers.
func (c *client) OnIDCopied(fn IDCopiedHook) {
	c.hooks.OnIDCopied(fn)
}

// OnRecordRemoved registers a callback for removed records.
func (c *client) OnRecordRemoved(fn RecordRemovedHook) {
	c.hooks.OnRecordRemoved(fn)
}

// Load reads and validates a roster file.
func (c *client) Load(ctx context.Context, path string) (*records.Dataset, error) {
	logger := logging.FromContext(c.context(ctx))

	ds, err := sheet.Load(path, c.sheetOptions()...)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Int("records", ds.Len()).
		Int("columns", len(ds.Header)).
		Msg("Loaded roster")
	return ds, nil
}

// Reconcile runs the configured pipeline and fires the hooks.
func (c *client) Reconcile(ctx context.Context, ds *records.Dataset) (*reconciler.Result, error) {
	result, err := c.reconciler.Run(c.context(ctx), ds)
	if err != nil {
		return nil, err
	}
	c.hooks.triggerResult(result)
	return result, nil
}

// Process loads, reconciles and optionally writes a roster.
func (c *client) Process(ctx context.Context, in, out string) (*reconciler.Result, error) {
	ctx = logging.WithSource(c.context(ctx), in)
	logger := logging.FromContext(ctx)

	ds, err := c.Load(ctx, in)
	if err != nil {
		return nil, err
	}

	result, err := c.Reconcile(ctx, ds)
	if err != nil {
		return nil, err
	}

	if out == "" {
		logger.Info().Msg("Dry run, roster not written")
		return result, nil
	}

	if err := sheet.Write(out, result.Dataset); err != nil {
		return nil, errors.WrapResource("export", "roster", out, err)
	}
	logger.Info().
		Str("output", out).
		Int("records", result.FinalRecords).
		Msg("Wrote roster")
	return result, nil
}

// Validate reports which required columns a file is missing.
func (c *client) Validate(ctx context.Context, path string) (*Validation, error) {
	var readOpts []sheet.Option
	if c.config.sheet != "" {
		readOpts = append(readOpts, sheet.WithSheet(c.config.sheet))
	}
	header, err := sheet.ReadHeader(path, readOpts...)
	if err != nil {
		return nil, err
	}

	v := &Validation{
		Path:      path,
		Header:    header,
		Required:  c.RequiredColumns(),
		Available: slices.Clone(header),
	}
	resolved, err := sheet.Resolve(path, header, v.Required, c.config.mapping)
	if mce, ok := errors.IsMissingColumns(err); ok {
		v.Missing = mce.Missing
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	v.Header = resolved

	mapped := make([]string, 0, len(c.config.mapping))
	for want := range c.config.mapping {
		mapped = append(mapped, want)
	}
	slices.Sort(mapped)

	logging.FromContext(c.context(ctx)).Debug().
		Str("source", path).
		Strs("mapped", mapped).
		Msg("Roster columns valid")
	return v, nil
}
