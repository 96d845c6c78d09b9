package reconciler

import (
	"github.com/agentstation/roster/pkg/errors"
)

// options configures a reconciler.
type options struct {
	pipeline    PipelineType
	namePolicy  Policy
	emailPolicy Policy
	progress    ProgressFunc
}

func defaultOptions() *options {
	return &options{
		pipeline: PipelineThreePass,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithPipeline selects the pass composition.
func WithPipeline(pipeline PipelineType) Option {
	return func(o *options) error {
		p, err := ParsePipeline(pipeline.String())
		if err != nil {
			return err
		}
		o.pipeline = p
		return nil
	}
}

// WithNamePolicy overrides the name pass policy of the pipeline.
func WithNamePolicy(policy Policy) Option {
	return func(o *options) error {
		p, err := ParsePolicy(policy.String())
		if err != nil {
			return err
		}
		o.namePolicy = p
		return nil
	}
}

// WithEmailPolicy overrides the email pass policy of the pipeline.
func WithEmailPolicy(policy Policy) Option {
	return func(o *options) error {
		p, err := ParsePolicy(policy.String())
		if err != nil {
			return err
		}
		o.emailPolicy = p
		return nil
	}
}

// WithProgress sets a callback invoked after every group of every pass.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return &errors.ValidationError{
				Field:   "progress",
				Message: "cannot be nil",
			}
		}
		o.progress = fn
		return nil
	}
}
