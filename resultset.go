package vorhaben

import (
	"sort"
	"sync"
)

// ResultSet collects page records by id. It is safe for concurrent use.
// Put on an existing id replaces the earlier record.
type ResultSet struct {
	mu      sync.Mutex
	records map[string]*PageRecord
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{records: make(map[string]*PageRecord)}
}

// Put stores rec under its id.
func (s *ResultSet) Put(rec *PageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
}

// Get returns the record with the given id.
func (s *ResultSet) Get(id string) (*PageRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Len returns the number of records.
func (s *ResultSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Sorted returns all records ordered by id.
func (s *ResultSet) Sorted() []*PageRecord {
	s.mu.Lock()
	records := make([]*PageRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	s.mu.Unlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records
}
