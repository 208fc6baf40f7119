package attendance

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gym-activity-backend/internal/catalog"
	"gym-activity-backend/internal/parse"
)

// Store defines the attendance operations the presentation layer may call.
type Store interface {
	Add(c Candidate) (int64, error)
	CheckOut(id int64) (Record, bool, error)
	Get(id int64) (Record, error)
	List() []Record
	ActiveCount() int
}

// memoryStore keeps records for the lifetime of the process only.
type memoryStore struct {
	mu      sync.RWMutex
	records []*Record // oldest first; List reverses
	byID    map[int64]*Record
	lastID  int64 // highest id ever issued, never reused
	loc     *time.Location
	now     func() time.Time
	demo    bool
}

// Option configures a memory store.
type Option func(*memoryStore)

// WithLocation sets the location zone-less check-in times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *memoryStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *memoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory attendance store.
func NewMemoryStore(opts ...Option) Store {
	s := &memoryStore{
		byID: make(map[int64]*Record),
		loc:  time.Local,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.demo {
		if err := s.seed(demoVisits); err != nil {
			panic(fmt.Sprintf("attendance: invalid demo data: %v", err))
		}
	}
	return s
}

// Add creates an active record from a candidate that already passed Validate.
// A candidate that fails validation here is a caller bug and is rejected.
func (s *memoryStore) Add(c Candidate) (int64, error) {
	if errs := Validate(c); len(errs) > 0 {
		log.Printf("BUG: attendance.Add called with unvalidated candidate (%s)", errs)
		return 0, fmt.Errorf("%w: %s", ErrMalformedCandidate, errs)
	}

	checkIn, err := parse.Timestamp(c.CheckInTime, s.loc)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedCandidate, err)
	}

	equipment, err := normalizeEquipment(c.Equipment)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	rec := &Record{
		ID:            s.lastID,
		MemberID:      strings.TrimSpace(c.MemberID),
		MemberName:    strings.TrimSpace(c.MemberName),
		CheckInTime:   checkIn,
		EquipmentUsed: equipment,
	}
	s.records = append(s.records, rec)
	s.byID[rec.ID] = rec
	return rec.ID, nil
}

// CheckOut closes an active record. Checking out a closed record again is a
// no-op that succeeds and leaves the original timestamp in place; the returned
// bool reports whether this call performed the transition.
func (s *memoryStore) CheckOut(id int64) (Record, bool, error) {
	return s.checkOutAt(id, s.now())
}

func (s *memoryStore) checkOutAt(id int64, at time.Time) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return Record{}, false, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if rec.CheckOutTime != nil {
		return rec.clone(), false, nil
	}

	out := at.In(s.loc).Truncate(time.Minute)
	// Check-in times are user supplied and may lie ahead of the clock.
	if out.Before(rec.CheckInTime) {
		out = rec.CheckInTime
	}
	rec.CheckOutTime = &out
	return rec.clone(), true, nil
}

// Get returns a copy of a single record.
func (s *memoryStore) Get(id int64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return rec.clone(), nil
}

// List returns a snapshot of all records, newest first.
func (s *memoryStore) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i].clone())
	}
	return out
}

// ActiveCount returns how many members are currently checked in.
func (s *memoryStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rec := range s.records {
		if rec.CheckOutTime == nil {
			n++
		}
	}
	return n
}

// normalizeEquipment drops duplicates and rejects names outside the catalog.
func normalizeEquipment(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !catalog.Contains(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
