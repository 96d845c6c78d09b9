package reconciler

import (
	"github.com/agentstation/roster/pkg/normalize"
	"github.com/agentstation/roster/pkg/records"
)

// MatchType names the key a pass groups records by.
type MatchType string

const (
	// MatchTypeName groups by normalized full name.
	MatchTypeName MatchType = "Name"
	// MatchTypeEmail groups by normalized email.
	MatchTypeEmail MatchType = "Email"
)

// String returns the string representation of a match type.
func (m MatchType) String() string {
	return string(m)
}

// KeyFunc picks the grouping key from a record's normalized keys. Records
// for which ok is false take no part in the pass.
type KeyFunc func(n normalize.Normalized) (key string, ok bool)

// ByName groups records by full name. Records missing a first or last name
// are skipped.
func ByName(n normalize.Normalized) (string, bool) {
	return n.NameKey, n.HasName
}

// ByEmail groups records by email. Records without an email are skipped.
func ByEmail(n normalize.Normalized) (string, bool) {
	return n.EmailKey, n.HasEmail
}

// ProgressFunc is called after each group is processed. current counts from 1
// to total and label is the group key.
type ProgressFunc func(current, total int, label string)

// Pass describes one Group Merger run.
type Pass struct {
	MatchType MatchType
	Key       KeyFunc
	Policy    Policy
}

// NamePass returns a pass grouping by full name.
func NamePass(policy Policy) Pass {
	return Pass{MatchType: MatchTypeName, Key: ByName, Policy: policy}
}

// EmailPass returns a pass grouping by email.
func EmailPass(policy Policy) Pass {
	return Pass{MatchType: MatchTypeEmail, Key: ByEmail, Policy: policy}
}

// ChangeRecord records one identifier copied from a donor row to a recipient
// row. Rows are external row numbers.
type ChangeRecord struct {
	MatchType      MatchType `json:"match_type" yaml:"match_type"`
	Key            string    `json:"key" yaml:"key"`
	SourceRow      int       `json:"source_row" yaml:"source_row"`
	DestinationRow int       `json:"destination_row" yaml:"destination_row"`
	MemberID       string    `json:"member_id" yaml:"member_id"`
}

// PassStats counts what a single pass did.
type PassStats struct {
	MatchType      MatchType `json:"match_type" yaml:"match_type"`
	Policy         Policy    `json:"policy" yaml:"policy"`
	TotalRecords   int       `json:"total_records" yaml:"total_records"`
	UniqueKeys     int       `json:"unique_keys" yaml:"unique_keys"`
	MatchesFound   int       `json:"matches_found" yaml:"matches_found"`
	IDsCopied      int       `json:"ids_copied" yaml:"ids_copied"`
	RecordsRemoved int       `json:"records_removed" yaml:"records_removed"`
}

// PassResult is the outcome of Merge.
type PassResult struct {
	// Dataset is a new dataset holding the surviving records.
	Dataset *records.Dataset
	Changes []ChangeRecord
	// Removed holds the removed records as they were when removed.
	Removed []records.Record
	Stats   PassStats
}

// group is the set of positions sharing one key, in dataset order.
type group struct {
	key       string
	positions []int
}

// groupBy buckets record positions by key in first-seen key order. keys
// holds the normalized keys of ds.Records by position.
func groupBy(keys []normalize.Normalized, key KeyFunc) []group {
	var groups []group
	lookup := make(map[string]int)
	for pos, n := range keys {
		k, ok := key(n)
		if !ok {
			continue
		}
		gi, seen := lookup[k]
		if !seen {
			gi = len(groups)
			lookup[k] = gi
			groups = append(groups, group{key: k})
		}
		groups[gi].positions = append(groups[gi].positions, pos)
	}
	return groups
}

// donorQueue is a FIFO of donor positions for one group.
type donorQueue struct {
	positions []int
	head      int
}

func (q *donorQueue) pop() (int, bool) {
	if q.head >= len(q.positions) {
		return 0, false
	}
	pos := q.positions[q.head]
	q.head++
	return pos, true
}

// Merge runs one pass over ds. It groups records by pass.Key, copies
// identifiers from rows that have one to rows of the same group that lack
// one, and drops donors according to pass.Policy. ds is not modified.
func Merge(ds *records.Dataset, pass Pass, progress ProgressFunc) PassResult {
	work := ds.Clone()
	if work == nil {
		work = &records.Dataset{}
	}
	keys := make([]normalize.Normalized, work.Len())
	for pos, rec := range work.Records {
		keys[pos] = normalize.Normalize(rec)
	}
	groups := groupBy(keys, pass.Key)

	result := PassResult{
		Stats: PassStats{
			MatchType:    pass.MatchType,
			Policy:       pass.Policy,
			TotalRecords: work.Len(),
			UniqueKeys:   len(groups),
		},
	}
	removed := make(map[int]bool)

	copyID := func(g group, from, to int) {
		donor := &work.Records[from]
		recipient := &work.Records[to]
		recipient.MemberID = donor.MemberID
		result.Changes = append(result.Changes, ChangeRecord{
			MatchType:      pass.MatchType,
			Key:            g.key,
			SourceRow:      donor.Row(),
			DestinationRow: recipient.Row(),
			MemberID:       donor.MemberID,
		})
		result.Stats.IDsCopied++
	}
	remove := func(pos int) {
		rec := work.Records[pos]
		if removed[rec.Index] {
			return
		}
		removed[rec.Index] = true
		result.Removed = append(result.Removed, rec.Clone())
		result.Stats.RecordsRemoved++
	}

	for gi, g := range groups {
		if len(g.positions) > 1 {
			var withID, withoutID []int
			for _, pos := range g.positions {
				if keys[pos].HasID {
					withID = append(withID, pos)
				} else {
					withoutID = append(withoutID, pos)
				}
			}

			if len(withID) > 0 && len(withoutID) > 0 {
				result.Stats.MatchesFound++
				switch pass.Policy {
				case PolicyRetaining:
					for _, to := range withoutID {
						copyID(g, withID[0], to)
					}
					for _, extra := range withID[1:] {
						remove(extra)
					}
				default:
					donors := &donorQueue{positions: withID}
					for _, to := range withoutID {
						from, ok := donors.pop()
						if !ok {
							break
						}
						copyID(g, from, to)
						remove(from)
					}
				}
			}
		}

		if progress != nil {
			progress(gi+1, len(groups), g.key)
		}
	}

	result.Dataset = work.Without(removed)
	return result
}
