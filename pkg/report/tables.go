// Package report renders the outcome of a reconciliation run as tables and
// as a markdown audit document.
package report

import (
	"strconv"

	"github.com/agentstation/roster/pkg/reconciler"
)

// Table is a header plus rows of text cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// ChangeTable lists every copied identifier in log order.
func ChangeTable(result *reconciler.Result) Table {
	return changeTable(result.Changes)
}

// ChangeTableByType lists the copied identifiers of one match type.
func ChangeTableByType(result *reconciler.Result, mt reconciler.MatchType) Table {
	return changeTable(result.ChangesByType(mt))
}

func changeTable(changes []reconciler.ChangeRecord) Table {
	t := Table{
		Header: []string{"Match Type", "Key", "Source Row", "Destination Row", "Member ID"},
		Rows:   make([][]string, 0, len(changes)),
	}
	for _, c := range changes {
		t.Rows = append(t.Rows, []string{
			c.MatchType.String(),
			c.Key,
			strconv.Itoa(c.SourceRow),
			strconv.Itoa(c.DestinationRow),
			c.MemberID,
		})
	}
	return t
}

// RemovedTable lists the records dropped for lacking an identifier.
func RemovedTable(result *reconciler.Result) Table {
	t := Table{
		Header: []string{"Row", "First Name", "Last Name", "Email"},
		Rows:   make([][]string, 0, len(result.Removed)),
	}
	for _, r := range result.Removed {
		t.Rows = append(t.Rows, []string{strconv.Itoa(r.Row), r.FirstName, r.LastName, r.Email})
	}
	return t
}

// StatsTable has one row per pass, one for the filter when it ran, and a
// final overall row.
func StatsTable(result *reconciler.Result) Table {
	t := Table{
		Header: []string{"Pass", "Policy", "Records", "Unique Keys", "Matches", "IDs Copied", "Removed"},
	}
	for _, p := range result.Passes {
		t.Rows = append(t.Rows, []string{
			p.MatchType.String(),
			p.Policy.String(),
			strconv.Itoa(p.TotalRecords),
			strconv.Itoa(p.UniqueKeys),
			strconv.Itoa(p.MatchesFound),
			strconv.Itoa(p.IDsCopied),
			strconv.Itoa(p.RecordsRemoved),
		})
	}
	if result.Filter != nil {
		t.Rows = append(t.Rows, []string{
			"Empty ID Filter", "-",
			strconv.Itoa(result.Filter.TotalRecords),
			"-", "-", "-",
			strconv.Itoa(result.Filter.RecordsRemoved),
		})
	}
	t.Rows = append(t.Rows, []string{
		"Overall", result.Pipeline.String(),
		strconv.Itoa(result.InitialRecords),
		"-", "-",
		strconv.Itoa(result.TotalCopied()),
		strconv.Itoa(result.TotalRemoved()),
	})
	return t
}
