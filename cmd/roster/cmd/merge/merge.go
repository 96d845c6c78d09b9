package merge

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/cmd/progress"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/report"
	"github.com/agentstation/roster/pkg/sheet"
)

// ExecuteMerge loads, merges and writes a roster, then prints the outcome.
func ExecuteMerge(ctx context.Context, app application.Application, flags *Flags, stdout, stderr io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()
	ctx = logging.WithLogger(ctx, app.Logger())
	ctx = logging.WithOperation(ctx, "merge")

	matchType, err := flags.matchType()
	if err != nil {
		return err
	}
	opts, err := flags.Options()
	if err != nil {
		return err
	}

	var bar *progress.Bar
	if flags.Progress && !app.Quiet() {
		bar = progress.New(stderr)
		opts = append(opts, roster.WithProgress(bar.Update))
	}

	client, err := app.Roster(opts...)
	if err != nil {
		return err
	}

	out := flags.outputPath()
	result, err := client.Process(ctx, flags.Input, out)
	if bar != nil {
		bar.Done()
	}
	if err != nil {
		if mce, ok := errors.IsMissingColumns(err); ok && !app.Quiet() {
			printMissingColumns(stderr, mce)
		}
		return err
	}

	if err := writeArtifacts(flags, result); err != nil {
		return err
	}

	return printResult(stdout, stderr, app, result, matchType, out)
}

// writeArtifacts writes the optional change log, audit and report files.
func writeArtifacts(flags *Flags, result *reconciler.Result) error {
	if flags.Changes != "" {
		t := report.ChangeTable(result)
		if err := sheet.WriteTable(flags.Changes, constants.ChangesSheetName, t.Header, t.Rows); err != nil {
			return errors.WrapResource("export", "changes", flags.Changes, err)
		}
	}

	if flags.Removed != "" {
		t := report.RemovedTable(result)
		if err := sheet.WriteTable(flags.Removed, constants.RemovedSheetName, t.Header, t.Rows); err != nil {
			return errors.WrapResource("export", "removed", flags.Removed, err)
		}
	}

	if flags.Report != "" {
		if err := writeReport(flags.Report, result); err != nil {
			return errors.WrapResource("export", "report", flags.Report, err)
		}
	}

	return nil
}

func writeReport(path string, result *reconciler.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := report.Markdown(f, result); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}
