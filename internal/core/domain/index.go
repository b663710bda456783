package domain

import "sort"

// Index maps fingerprints to entries. The whole map is persisted as a
// single JSON document.
type Index map[string]Entry

// Record pairs a fingerprint with its entry for ordered listings.
type Record struct {
	Fingerprint string
	Entry       Entry
}

// SortedByTime returns the index contents ordered by call time, oldest
// first. Ties order by fingerprint.
func (idx Index) SortedByTime() []Record {
	records := make([]Record, 0, len(idx))
	for fp, e := range idx {
		records = append(records, Record{Fingerprint: fp, Entry: e})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Entry.CalledAt.Equal(records[j].Entry.CalledAt) {
			return records[i].Fingerprint < records[j].Fingerprint
		}
		return records[i].Entry.CalledAt.Before(records[j].Entry.CalledAt)
	})
	return records
}
