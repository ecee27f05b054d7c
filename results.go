package mailsift

import "sync"

// ResultSet accumulates found-email records in discovery order. The
// crawl coordinator is the only writer, but observers may snapshot the
// growing set at any time, so access is guarded. Records are never
// removed.
type ResultSet struct {
	mu      sync.Mutex
	dedup   bool
	records []EmailRecord
	seen    map[string]struct{}
}

// NewResultSet creates an empty ResultSet. With dedupEmails enabled at
// most one record per email address is kept.
func NewResultSet(dedupEmails bool) *ResultSet {
	return &ResultSet{
		dedup: dedupEmails,
		seen:  make(map[string]struct{}),
	}
}

// Add appends records and returns the ones actually admitted. With
// dedup enabled a record is dropped when its email was already seen on
// an earlier completion (first page wins); otherwise every record is
// kept, each with its own page attribution.
func (rs *ResultSet) Add(records []EmailRecord) []EmailRecord {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var added []EmailRecord
	for _, r := range records {
		if rs.dedup {
			if _, ok := rs.seen[r.Email]; ok {
				continue
			}
			rs.seen[r.Email] = struct{}{}
		}
		rs.records = append(rs.records, r)
		added = append(added, r)
	}
	return added
}

// Records returns a copy of all records in insertion order.
func (rs *ResultSet) Records() []EmailRecord {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]EmailRecord, len(rs.records))
	copy(out, rs.records)
	return out
}

// Len returns the current record count.
func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.records)
}
