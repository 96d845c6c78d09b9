package merge

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/cmd/emoji"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/report"
)

// Summary is the structured form of a merge printed as json or yaml.
type Summary struct {
	RunID          string                     `json:"run_id" yaml:"run_id"`
	Pipeline       reconciler.PipelineType    `json:"pipeline" yaml:"pipeline"`
	Output         string                     `json:"output,omitempty" yaml:"output,omitempty"`
	DryRun         bool                       `json:"dry_run" yaml:"dry_run"`
	InitialRecords int                        `json:"initial_records" yaml:"initial_records"`
	FinalRecords   int                        `json:"final_records" yaml:"final_records"`
	Passes         []reconciler.PassStats     `json:"passes" yaml:"passes"`
	Filter         *reconciler.FilterStats    `json:"filter,omitempty" yaml:"filter,omitempty"`
	Changes        []reconciler.ChangeRecord  `json:"changes" yaml:"changes"`
	Removed        []reconciler.RemovedRecord `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func newSummary(result *reconciler.Result, matchType reconciler.MatchType, out string) Summary {
	changes := result.Changes
	if matchType != "" {
		changes = result.ChangesByType(matchType)
	}
	if changes == nil {
		changes = []reconciler.ChangeRecord{}
	}
	return Summary{
		RunID:          result.RunID,
		Pipeline:       result.Pipeline,
		Output:         out,
		DryRun:         out == "",
		InitialRecords: result.InitialRecords,
		FinalRecords:   result.FinalRecords,
		Passes:         result.Passes,
		Filter:         result.Filter,
		Changes:        changes,
		Removed:        result.Removed,
	}
}

func printResult(stdout, stderr io.Writer, app application.Application, result *reconciler.Result, matchType reconciler.MatchType, out string) error {
	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)

	if format != output.FormatTable {
		return formatter.Format(stdout, newSummary(result, matchType, out))
	}

	if err := formatter.Format(stdout, sections(result, matchType)); err != nil {
		return err
	}

	if app.Quiet() {
		return nil
	}
	fmt.Fprintf(stderr, "\n%s %s\n", emoji.Success, result.Summary())
	if out == "" {
		fmt.Fprintf(stderr, "%s Dry run: roster not written\n", emoji.Warning)
	} else {
		fmt.Fprintf(stderr, "%s Wrote %d records to %s\n", emoji.Success, result.FinalRecords, out)
	}
	return nil
}

func sections(result *reconciler.Result, matchType reconciler.MatchType) output.Sections {
	stats := report.StatsTable(result)
	out := output.Sections{{
		Title:   "Pass Statistics",
		Headers: stats.Header,
		Rows:    stats.Rows,
	}}

	changes := report.ChangeTable(result)
	if matchType != "" {
		changes = report.ChangeTableByType(result, matchType)
	}
	out = append(out, output.Data{
		Title:   fmt.Sprintf("ID Matching Changes (%d of %d)", len(changes.Rows), len(result.Changes)),
		Headers: changes.Header,
		Rows:    changes.Rows,
		Empty:   "No matching profiles found to merge.",
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignRight, output.AlignLeft,
		},
	})

	if result.Filter != nil {
		removed := report.RemovedTable(result)
		out = append(out, output.Data{
			Title:   "Records Removed (Empty Member Card IDs)",
			Headers: removed.Header,
			Rows:    removed.Rows,
			Empty:   "No records with empty Member Card IDs found.",
		})
	}

	return out
}

// printMissingColumns explains a failed column check and how to fix it.
func printMissingColumns(w io.Writer, mce *errors.MissingColumnsError) {
	fmt.Fprintf(w, "%s Missing required columns: %s\n", emoji.Error, strings.Join(mce.Missing, ", "))
	fmt.Fprintf(w, "  Available columns: %s\n", strings.Join(mce.Available, ", "))
	fmt.Fprintf(w, "%s Map file columns with --map, e.g. --map %q\n", emoji.Info, mce.Missing[0]+"=Your Column")
}
