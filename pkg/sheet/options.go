package sheet

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/records"
)

// options configures loading.
type options struct {
	sheet    string
	mapping  map[string]string
	required []string
}

func defaultOptions() *options {
	return &options{
		required: records.RequiredColumns(true),
	}
}

// Option is a function that configures Load.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithSheet selects the worksheet of an xlsx workbook. The first sheet is
// read by default. Ignored for CSV.
func WithSheet(name string) Option {
	return func(o *options) error {
		o.sheet = name
		return nil
	}
}

// WithColumnMapping renames file columns to the required column names. Keys
// are required names, values are the column names found in the file.
func WithColumnMapping(mapping map[string]string) Option {
	return func(o *options) error {
		for required, column := range mapping {
			if strings.TrimSpace(column) == "" {
				return &errors.ValidationError{
					Field:   "mapping",
					Value:   required,
					Message: "file column cannot be empty",
				}
			}
		}
		o.mapping = maps.Clone(mapping)
		return nil
	}
}

// WithRequiredColumns replaces the columns validated before loading.
func WithRequiredColumns(cols []string) Option {
	return func(o *options) error {
		o.required = slices.Clone(cols)
		return nil
	}
}
