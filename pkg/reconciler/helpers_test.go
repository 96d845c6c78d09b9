package reconciler

import (
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/records"
)

// member is a compact test row: first, last, email, member ID.
type member [4]string

var testHeader = []string{
	constants.ColumnFirstName,
	constants.ColumnLastName,
	constants.ColumnEmail,
	constants.ColumnMemberID,
	"Notes",
}

// newTestDataset builds a dataset from compact rows. The Notes column holds
// the row position so passthrough values can be checked.
func newTestDataset(members ...member) *records.Dataset {
	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = []string{m[0], m[1], m[2], m[3], string(rune('a' + i))}
	}
	return records.New(testHeader, rows)
}

// ids returns the member IDs of a dataset in order.
func ids(ds *records.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, rec := range ds.Records {
		out = append(out, rec.MemberID)
	}
	return out
}

// indexes returns the record indexes of a dataset in order.
func indexes(ds *records.Dataset) []int {
	out := make([]int, 0, ds.Len())
	for _, rec := range ds.Records {
		out = append(out, rec.Index)
	}
	return out
}
