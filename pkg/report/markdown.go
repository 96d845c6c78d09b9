package report

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/reconciler"
)

// Markdown writes an audit report of a run to w.
func Markdown(w io.Writer, result *reconciler.Result) error {
	doc := md.NewMarkdown(w)

	doc.H1("Roster Reconciliation Report").LF()
	doc.BulletList(
		fmt.Sprintf("Run: %s", md.Code(result.RunID)),
		fmt.Sprintf("Pipeline: %s", result.Pipeline.Name()),
		fmt.Sprintf("Started: %s", result.Metadata.StartTime.Format(constants.TimeFormatHuman)),
		fmt.Sprintf("Duration: %s", result.Metadata.Duration),
	)
	doc.LF()

	doc.H2("Overall Results").LF()
	doc.BulletList(
		fmt.Sprintf("Initial records: %s", md.Bold(fmt.Sprint(result.InitialRecords))),
		fmt.Sprintf("Final records: %s", md.Bold(fmt.Sprint(result.FinalRecords))),
		fmt.Sprintf("IDs copied: %d", result.TotalCopied()),
		fmt.Sprintf("Records removed: %d", result.TotalRemoved()),
	)
	doc.LF()

	doc.H2("Pass Statistics").LF()
	stats := StatsTable(result)
	doc.Table(md.TableSet{Header: stats.Header, Rows: stats.Rows})
	doc.LF()

	doc.H2("ID Matching Changes").LF()
	if len(result.Changes) == 0 {
		doc.PlainText("No matching profiles found to merge.").LF()
	} else {
		changes := ChangeTable(result)
		doc.Table(md.TableSet{Header: changes.Header, Rows: changes.Rows})
	}
	doc.LF()

	if result.Filter != nil {
		doc.H2("Records Removed (Empty Member Card IDs)").LF()
		if len(result.Removed) == 0 {
			doc.PlainText("No records with empty Member Card IDs found.").LF()
		} else {
			removed := RemovedTable(result)
			doc.Table(md.TableSet{Header: removed.Header, Rows: removed.Rows})
			doc.PlainTextf("Removed %d records with empty Member Card IDs.", len(result.Removed)).LF()
		}
	}

	return doc.Build()
}
