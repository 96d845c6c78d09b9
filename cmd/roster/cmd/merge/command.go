// Package merge provides the merge command implementation.
package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/cmd/constants"
)

// NewCommand creates the merge command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "merge INPUT [OUTPUT]",
		GroupID: constants.GroupCore,
		Short:   "Merge duplicate members and copy card IDs",
		Args:    cobra.RangeArgs(1, 2),
		Long: `Merge deduplicates a membership roster exported from the point-of-sale
system. Rows of the same person that lack a Member Card ID receive the ID of
a row that has one, and the redundant rows are dropped.

Pipelines:
• name-only   one pass grouping by first and last name
• two-pass    name pass, then email pass; members without an ID are kept
• three-pass  name pass, email pass, then every member still without an ID
              is removed and listed in the audit (default)

Donor policies decide which rows are dropped once an ID has been copied:
• consuming   each donor row gives its ID once and is removed
• retaining   the first donor is kept and reused, other donors are removed

The cleaned roster is written to OUTPUT, by default processed_roster.xlsx
next to INPUT. Member Card IDs are always written as text.`,
		Example: `  roster merge export.xlsx                          # Three-pass merge
  roster merge export.csv cleaned.xlsx              # Explicit output file
  roster merge export.xlsx --pipeline two-pass      # Keep members without an ID
  roster merge export.xlsx --dry                    # Preview only
  roster merge export.xlsx --map "Member Card ID=Card #"
  roster merge export.xlsx --changes changes.csv --removed removed.csv --report report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Input = args[0]
			if len(args) == 2 {
				flags.Output = args[1]
			}
			return ExecuteMerge(cmd.Context(), app, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addMergeFlags(cmd)

	return cmd
}
