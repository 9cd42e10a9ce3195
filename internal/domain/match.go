package domain

import "github.com/kailas-cloud/askdex/internal/domain/record"

// Match pairs a record with its relevance score for one query.
type Match struct {
	Record record.Record
	Score  float64
}

// RetrievalResult is an ordered match list: descending score, ties broken by
// record id ascending, truncated to the caller's top-k bound.
type RetrievalResult struct {
	Matches []Match
}

// Empty reports whether no record matched.
func (r RetrievalResult) Empty() bool { return len(r.Matches) == 0 }

// RecordIDs returns the matched record ids in result order.
func (r RetrievalResult) RecordIDs() []int64 {
	if len(r.Matches) == 0 {
		return nil
	}
	ids := make([]int64, len(r.Matches))
	for i, m := range r.Matches {
		ids[i] = m.Record.ID()
	}
	return ids
}
