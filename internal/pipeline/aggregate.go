package pipeline

import (
	"sort"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

// Aggregator collects finalized records and rolls up counters as
// results land, in any completion order. It is the single accumulation
// point for a run: callers feed it serially.
type Aggregator struct {
	records []entity.VoterRecord
	stats   entity.PageStats
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add records one finalized (validated) record.
func (a *Aggregator) Add(rec entity.VoterRecord) {
	a.records = append(a.records, rec)
	a.stats.TotalTiles++
	if rec.Valid {
		a.stats.ValidRecords++
	} else {
		a.stats.InvalidRecords++
	}
}

// AddSkipped counts tiles that were never processed: structural
// out-of-bounds skips or records not marked valid at the recognition
// stage. Skips are not failures and do not touch the invalid counter.
func (a *Aggregator) AddSkipped(n int) {
	a.stats.TotalTiles += n
	a.stats.SkippedTiles += n
}

// Finalize returns the collected records sorted by page id then record
// id, plus the accumulated counters.
func (a *Aggregator) Finalize() ([]entity.VoterRecord, entity.PageStats) {
	sort.Slice(a.records, func(i, j int) bool {
		if a.records[i].PageID != a.records[j].PageID {
			return a.records[i].PageID < a.records[j].PageID
		}
		return a.records[i].RecordID < a.records[j].RecordID
	})
	return a.records, a.stats
}

// Accepted filters a finalized record slice down to valid records.
func Accepted(records []entity.VoterRecord) []entity.VoterRecord {
	out := make([]entity.VoterRecord, 0, len(records))
	for _, r := range records {
		if r.Valid {
			out = append(out, r)
		}
	}
	return out
}
