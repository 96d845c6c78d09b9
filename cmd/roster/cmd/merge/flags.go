package merge

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/cmdutil"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconciler"
)

// Flags holds the merge command flags and arguments.
type Flags struct {
	*cmdutil.RosterFlags

	Input  string
	Output string

	Changes   string
	Removed   string
	Report    string
	MatchType string
	DryRun    bool
	Progress  bool
}

func addMergeFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{RosterFlags: cmdutil.AddRosterFlags(cmd)}

	cmd.Flags().StringVar(&flags.Changes, "changes", "",
		"Write the ID change log to a .csv or .xlsx file")
	cmd.Flags().StringVar(&flags.Removed, "removed", "",
		"Write the removed-records audit to a .csv or .xlsx file")
	cmd.Flags().StringVar(&flags.Report, "report", "",
		"Write a markdown audit report")
	cmd.Flags().StringVar(&flags.MatchType, "match-type", "all",
		"Show changes of one match type: all, name, email")
	cmd.Flags().BoolVar(&flags.DryRun, "dry", false,
		"Preview the merge without writing the roster")
	cmd.Flags().BoolVar(&flags.Progress, "progress", true,
		"Show progress on a terminal")

	return flags
}

// outputPath returns the roster destination, or "" for a dry run.
func (f *Flags) outputPath() string {
	if f.DryRun {
		return ""
	}
	if f.Output != "" {
		return f.Output
	}
	return filepath.Join(filepath.Dir(f.Input), constants.DefaultOutputFile)
}

// matchType parses the --match-type filter. An empty result means all.
func (f *Flags) matchType() (reconciler.MatchType, error) {
	switch strings.ToLower(strings.TrimSpace(f.MatchType)) {
	case "", "all":
		return "", nil
	case "name":
		return reconciler.MatchTypeName, nil
	case "email":
		return reconciler.MatchTypeEmail, nil
	}
	return "", &errors.ValidationError{
		Field:   "match-type",
		Value:   f.MatchType,
		Message: "must be one of: all, name, email",
	}
}
