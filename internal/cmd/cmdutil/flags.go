// Package cmdutil provides shared flags and parsing helpers for roster commands.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/records"
)

// RosterFlags holds the flags that select how a roster is read and merged.
type RosterFlags struct {
	Pipeline    string
	NamePolicy  string
	EmailPolicy string
	Sheet       string
	Mappings    []string
}

// AddRosterFlags adds roster selection flags to a command.
func AddRosterFlags(cmd *cobra.Command) *RosterFlags {
	flags := &RosterFlags{}

	cmd.Flags().StringVarP(&flags.Pipeline, "pipeline", "p", "",
		"Pipeline: name-only, two-pass, three-pass (default from config, else three-pass)")
	cmd.Flags().StringVar(&flags.NamePolicy, "name-policy", "",
		"Donor policy for the name pass: consuming, retaining")
	cmd.Flags().StringVar(&flags.EmailPolicy, "email-policy", "",
		"Donor policy for the email pass: consuming, retaining")
	cmd.Flags().StringVar(&flags.Sheet, "sheet", "",
		"Worksheet to read from an xlsx workbook (default first sheet)")
	cmd.Flags().StringArrayVarP(&flags.Mappings, "map", "m", nil,
		`Map a required column to a file column, e.g. --map "Member Card ID=Card #"`)

	return flags
}

// Options converts the flags into roster options. Unset flags add nothing so
// configuration defaults apply.
func (f *RosterFlags) Options() ([]roster.Option, error) {
	var opts []roster.Option

	if f.Pipeline != "" {
		p, err := reconciler.ParsePipeline(f.Pipeline)
		if err != nil {
			return nil, err
		}
		opts = append(opts, roster.WithPipeline(p))
	}
	if f.NamePolicy != "" {
		p, err := reconciler.ParsePolicy(f.NamePolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, roster.WithNamePolicy(p))
	}
	if f.EmailPolicy != "" {
		p, err := reconciler.ParsePolicy(f.EmailPolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, roster.WithEmailPolicy(p))
	}
	if f.Sheet != "" {
		opts = append(opts, roster.WithSheet(f.Sheet))
	}
	if len(f.Mappings) > 0 {
		mapping, err := ParseColumnMappings(f.Mappings)
		if err != nil {
			return nil, err
		}
		opts = append(opts, roster.WithColumnMapping(mapping))
	}

	return opts, nil
}

// ParseColumnMappings parses "Required=File Column" pairs.
func ParseColumnMappings(values []string) (map[string]string, error) {
	mapping := make(map[string]string, len(values))
	for _, value := range values {
		required, column, ok := strings.Cut(value, "=")
		required, column = strings.TrimSpace(required), strings.TrimSpace(column)
		if !ok || required == "" || column == "" {
			return nil, &errors.ValidationError{
				Field:   "map",
				Value:   value,
				Message: `expected "Required Column=File Column"`,
			}
		}
		canonical, ok := CanonicalColumn(required)
		if !ok {
			return nil, &errors.ValidationError{
				Field:   "map",
				Value:   value,
				Message: fmt.Sprintf("%q is not a required column, expected one of %s", required, strings.Join(records.RequiredColumns(true), ", ")),
			}
		}
		mapping[canonical] = column
	}
	return mapping, nil
}

// CanonicalColumn matches a required column name case-insensitively.
func CanonicalColumn(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, col := range records.RequiredColumns(true) {
		if strings.EqualFold(col, name) {
			return col, true
		}
	}
	return "", false
}
