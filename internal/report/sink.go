package report

import (
	"sort"
	"sync"
)

// SortKey selects the ordering of the final report.
type SortKey string

const (
	// SortByName orders rows by last name, then first name.
	SortByName SortKey = "name"
	// SortByIdentity orders rows by the raw student identity string.
	SortByIdentity SortKey = "identity"
)

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByName, SortByIdentity:
		return SortKey(s), true
	}
	return "", false
}

// Sink collects rows from concurrent workers. Any worker may Add at any
// time; rows are never lost or duplicated regardless of arrival order.
type Sink struct {
	mu   sync.Mutex
	rows []Row
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends one row. Safe for concurrent use.
func (s *Sink) Add(row Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
}

// Len returns the number of collected rows.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Drain returns the collected rows sorted by the given key. Sorting by
// identity is a pure function of the identity strings, so two runs over
// the same results produce identical output regardless of completion
// order.
func (s *Sink) Drain(key SortKey) []Row {
	s.mu.Lock()
	rows := make([]Row, len(s.rows))
	copy(rows, s.rows)
	s.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		if key == SortByIdentity {
			return rows[i].StudentName < rows[j].StudentName
		}
		if rows[i].LastName != rows[j].LastName {
			return rows[i].LastName < rows[j].LastName
		}
		return rows[i].FirstName < rows[j].FirstName
	})

	return rows
}
