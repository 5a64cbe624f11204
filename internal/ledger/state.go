package ledger

import (
	"sort"
	"time"
)

// State holds the expense records for one loaded period. It is a plain
// container: callers validate records before handing them in, and all
// operations here are synchronous and total. Serializing access is the
// owning session's job.
type State struct {
	records []Record
	start   time.Time
	end     time.Time
}

func NewState() *State {
	return &State{records: []Record{}}
}

// Load replaces the whole set with records for the period [start, end].
// The remote store already orders by occurrence date, but ordering is
// re-established here so it never depends on the collaborator: occurrence
// date descending, ties broken by ID ascending.
func (s *State) Load(start, end time.Time, records []Record) {
	s.start = start
	s.end = end
	s.records = make([]Record, len(records))
	copy(s.records, records)
	s.sortRecords()
}

// InsertLocal appends a freshly persisted record, but only when it falls
// inside the loaded period. A record dated outside the viewed month was
// still accepted upstream; it just stays invisible until that month is
// loaded. Reports whether the record became visible.
func (s *State) InsertLocal(r Record) bool {
	if !InRange(r.OccurredAt, s.start, s.end) {
		return false
	}
	s.records = append(s.records, r)
	s.sortRecords()
	return true
}

// UpdateLocal patches the record with the given ID, leaving OccurredAt and
// CreatedAt untouched. Absent IDs are a no-op: the authoritative copy lives
// server-side. No re-sort is needed since the sort key cannot change.
func (s *State) UpdateLocal(id string, p Patch) bool {
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		s.records[i].Name = p.Name
		s.records[i].Category = p.Category
		s.records[i].Amount = p.Amount
		s.records[i].Note = p.Note
		return true
	}
	return false
}

// DeleteLocal removes the record with the given ID; no-op if absent.
func (s *State) DeleteLocal(id string) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the record with the given ID, if visible.
func (s *State) Find(id string) (Record, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Records returns a copy of the current set so callers cannot mutate state
// behind the owner's back.
func (s *State) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Period returns the inclusive range the state was loaded for.
func (s *State) Period() (time.Time, time.Time) {
	return s.start, s.end
}

func (s *State) Len() int {
	return len(s.records)
}

func (s *State) sortRecords() {
	sort.SliceStable(s.records, func(i, j int) bool {
		if !s.records[i].OccurredAt.Equal(s.records[j].OccurredAt) {
			return s.records[i].OccurredAt.After(s.records[j].OccurredAt)
		}
		return s.records[i].ID < s.records[j].ID
	})
}
