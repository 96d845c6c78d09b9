package reconciler

import (
	"github.com/agentstation/roster/pkg/normalize"
	"github.com/agentstation/roster/pkg/records"
)

// RemovedRecord is an audit entry for a record dropped because it still had
// no identifier after every pass.
type RemovedRecord struct {
	Row       int    `json:"row" yaml:"row"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
}

// FilterStats counts what the empty-identifier filter did.
type FilterStats struct {
	TotalRecords   int `json:"total_records" yaml:"total_records"`
	RecordsRemoved int `json:"records_removed" yaml:"records_removed"`
}

// filterResult is the outcome of filterMissingIDs.
type filterResult struct {
	dataset *records.Dataset
	removed []records.Record
	audit   []RemovedRecord
	stats   FilterStats
}

// filterMissingIDs drops every record whose identifier is absent.
func filterMissingIDs(ds *records.Dataset) filterResult {
	res := filterResult{
		stats: FilterStats{TotalRecords: ds.Len()},
	}
	drop := make(map[int]bool)
	for _, rec := range ds.Records {
		if normalize.HasIdentifier(rec.MemberID) {
			continue
		}
		drop[rec.Index] = true
		res.removed = append(res.removed, rec.Clone())
		res.audit = append(res.audit, RemovedRecord{
			Row:       rec.Row(),
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Email:     rec.Email,
		})
	}
	res.stats.RecordsRemoved = len(res.audit)
	res.dataset = ds.Without(drop)
	return res
}
