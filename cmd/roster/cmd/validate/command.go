// Package validate provides the validate command implementation.
package validate

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/cmd/cmdutil"
	"github.com/agentstation/roster/internal/cmd/constants"
	"github.com/agentstation/roster/internal/cmd/emoji"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/errors"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.RosterFlags

	cmd := &cobra.Command{
		Use:     "validate INPUT",
		GroupID: constants.GroupCore,
		Short:   "Check that a roster has the required columns",
		Long: `Validate reads the header of a roster file and checks that every column the
selected pipeline needs is present. Email is only required by pipelines with
an email pass. Use --map to point a required column at a differently named
file column.`,
		Example: `  roster validate export.xlsx
  roster validate export.csv --pipeline name-only
  roster validate export.xlsx --map "Member Card ID=Card #"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), app, flags, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = cmdutil.AddRosterFlags(cmd)

	return cmd
}

// Execute validates the columns of path and prints the outcome. It returns a
// MissingColumnsError when a required column is absent.
func Execute(ctx context.Context, app application.Application, flags *cmdutil.RosterFlags, path string, stdout, stderr io.Writer) error {
	opts, err := flags.Options()
	if err != nil {
		return err
	}
	client, err := app.Roster(opts...)
	if err != nil {
		return err
	}

	v, err := client.Validate(ctx, path)
	if err != nil {
		return err
	}

	if err := printValidation(stdout, stderr, app, client, v); err != nil {
		return err
	}

	if !v.Valid() {
		return errors.NewMissingColumnsError(path, v.Missing, v.Available)
	}
	return nil
}

func printValidation(stdout, stderr io.Writer, app application.Application, client roster.Client, v *roster.Validation) error {
	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)

	if format != output.FormatTable {
		return formatter.Format(stdout, v)
	}

	rows := make([][]string, 0, len(v.Required))
	for _, col := range v.Required {
		status := emoji.Success + " found"
		if slices.Contains(v.Missing, col) {
			status = emoji.Error + " missing"
		}
		rows = append(rows, []string{col, status})
	}
	err := formatter.Format(stdout, output.Data{
		Title:   fmt.Sprintf("Required columns for %s", client.Pipeline().Name()),
		Headers: []string{"Column", "Status"},
		Rows:    rows,
	})
	if err != nil {
		return err
	}

	if app.Quiet() {
		return nil
	}
	fmt.Fprintf(stderr, "\nAvailable columns: %s\n", strings.Join(v.Available, ", "))
	if v.Valid() {
		fmt.Fprintf(stderr, "%s %s is ready to merge\n", emoji.Success, v.Path)
		return nil
	}
	fmt.Fprintf(stderr, "%s Map file columns with --map, e.g. --map %q\n", emoji.Info, v.Missing[0]+"=Your Column")
	return nil
}
