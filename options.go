package roster

import (
	"maps"

	"github.com/rs/zerolog"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconciler"
)

// Option is a function that configures a roster client
type Option func(*config) error

// config holds client configuration
type config struct {
	pipeline    reconciler.PipelineType
	namePolicy  reconciler.Policy
	emailPolicy reconciler.Policy
	mapping     map[string]string
	sheet       string
	progress    reconciler.ProgressFunc
	logger      *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		pipeline: reconciler.PipelineThreePass,
	}
}

func (c *config) apply(opts ...Option) (*config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithPipeline selects the pass composition
func WithPipeline(pipeline reconciler.PipelineType) Option {
	return func(c *config) error {
		p, err := reconciler.ParsePipeline(pipeline.String())
		if err != nil {
			return err
		}
		c.pipeline = p
		return nil
	}
}

// WithNamePolicy overrides the donor policy of the name pass
func WithNamePolicy(policy reconciler.Policy) Option {
	return func(c *config) error {
		p, err := reconciler.ParsePolicy(policy.String())
		if err != nil {
			return err
		}
		c.namePolicy = p
		return nil
	}
}

// WithEmailPolicy overrides the donor policy of the email pass
func WithEmailPolicy(policy reconciler.Policy) Option {
	return func(c *config) error {
		p, err := reconciler.ParsePolicy(policy.String())
		if err != nil {
			return err
		}
		c.emailPolicy = p
		return nil
	}
}

// WithColumnMapping renames file columns to the required column names.
// Keys are required names, values are the names found in the file.
// Repeated options merge, later entries win.
func WithColumnMapping(mapping map[string]string) Option {
	return func(c *config) error {
		if c.mapping == nil {
			c.mapping = make(map[string]string, len(mapping))
		}
		maps.Copy(c.mapping, mapping)
		return nil
	}
}

// WithSheet selects the worksheet read from xlsx workbooks
func WithSheet(name string) Option {
	return func(c *config) error {
		c.sheet = name
		return nil
	}
}

// WithProgress sets a callback invoked after every group of every pass
func WithProgress(fn reconciler.ProgressFunc) Option {
	return func(c *config) error {
		c.progress = fn
		return nil
	}
}

// WithLogger sets the logger used for every client operation
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

func (c *config) reconcilerOptions() []reconciler.Option {
	opts := []reconciler.Option{reconciler.WithPipeline(c.pipeline)}
	if c.namePolicy != "" {
		opts = append(opts, reconciler.WithNamePolicy(c.namePolicy))
	}
	if c.emailPolicy != "" {
		opts = append(opts, reconciler.WithEmailPolicy(c.emailPolicy))
	}
	if c.progress != nil {
		opts = append(opts, reconciler.WithProgress(c.progress))
	}
	return opts
}
