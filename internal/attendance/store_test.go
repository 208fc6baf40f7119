package attendance

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable clock for store tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2023, 7, 1, 8, 0, 0, 0, time.UTC)}
	return NewMemoryStore(WithLocation(time.UTC), WithClock(clock.Now)), clock
}

func TestMemoryStore_AddScenario(t *testing.T) {
	store, _ := newTestStore(t)

	id, err := store.Add(Candidate{
		MemberID:    "M200",
		MemberName:  "Dana Lee",
		CheckInTime: "2023-07-01T09:00",
		Equipment:   []string{"Treadmill"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	records := store.List()
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "M200", rec.MemberID)
	assert.Equal(t, "Dana Lee", rec.MemberName)
	assert.Equal(t, time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC), rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)
	assert.Equal(t, StateActive, rec.State())
	assert.Equal(t, []string{"Treadmill"}, rec.EquipmentUsed)
}

func TestMemoryStore_CheckOutScenario(t *testing.T) {
	store, clock := newTestStore(t)

	id, err := store.Add(Candidate{MemberID: "M200", MemberName: "Dana Lee", CheckInTime: "2023-07-01T09:00", Equipment: []string{"Treadmill"}})
	require.NoError(t, err)

	later := time.Date(2023, 7, 1, 10, 30, 0, 0, time.UTC)
	clock.Set(later)

	rec, changed, err := store.CheckOut(id)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, rec.CheckOutTime)
	assert.True(t, later.Equal(*rec.CheckOutTime))
	assert.False(t, rec.CheckOutTime.Before(rec.CheckInTime))
	assert.Equal(t, StateClosed, rec.State())

	stored, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

// Re-checking-out a closed record succeeds as a no-op and keeps the first timestamp.
func TestMemoryStore_CheckOutIsIdempotent(t *testing.T) {
	store, clock := newTestStore(t)

	id, err := store.Add(Candidate{MemberID: "M1", MemberName: "A", CheckInTime: "2023-07-01T09:00"})
	require.NoError(t, err)

	first := time.Date(2023, 7, 1, 11, 0, 0, 0, time.UTC)
	clock.Set(first)
	_, changed, err := store.CheckOut(id)
	require.NoError(t, err)
	require.True(t, changed)

	clock.Set(first.Add(2 * time.Hour))
	rec, changed, err := store.CheckOut(id)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, first.Equal(*rec.CheckOutTime))

	// Even a clock that went backwards cannot move the timestamp.
	clock.Set(first.Add(-time.Hour))
	rec, _, err = store.CheckOut(id)
	require.NoError(t, err)
	assert.True(t, first.Equal(*rec.CheckOutTime))
}

func TestMemoryStore_CheckOutNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, _, err := store.CheckOut(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CheckOutBeforeCheckInClamps(t *testing.T) {
	store, clock := newTestStore(t)

	id, err := store.Add(Candidate{MemberID: "M1", MemberName: "A", CheckInTime: "2023-07-01T18:00"})
	require.NoError(t, err)

	clock.Set(time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC))
	rec, _, err := store.CheckOut(id)
	require.NoError(t, err)
	assert.True(t, rec.CheckInTime.Equal(*rec.CheckOutTime))
}

func TestMemoryStore_CheckOutTruncatesToMinute(t *testing.T) {
	store, clock := newTestStore(t)

	id, err := store.Add(Candidate{MemberID: "M1", MemberName: "A", CheckInTime: "2023-07-01T09:00"})
	require.NoError(t, err)

	clock.Set(time.Date(2023, 7, 1, 9, 41, 37, 500, time.UTC))
	rec, _, err := store.CheckOut(id)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 7, 1, 9, 41, 0, 0, time.UTC), *rec.CheckOutTime)
}

func TestMemoryStore_IDsAreStrictlyIncreasingAndNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)

	var last int64
	for _, name := range []string{"Alex Johnson", "Sarah Miller", "James Wilson"} {
		id, err := store.Add(Candidate{MemberID: "M", MemberName: name, CheckInTime: "2023-07-01T09:00"})
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}

	records := store.List()
	require.Len(t, records, 3)
	assert.Equal(t, "James Wilson", records[0].MemberName)
	assert.Equal(t, "Alex Johnson", records[2].MemberName)
}

func TestMemoryStore_AddRejectsMalformedCandidate(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Add(Candidate{MemberID: "", MemberName: "Dana Lee", CheckInTime: "2023-07-01T09:00"})
	assert.ErrorIs(t, err, ErrMalformedCandidate)
	assert.Empty(t, store.List())

	// A rejected candidate must not burn an id.
	id, err := store.Add(Candidate{MemberID: "M1", MemberName: "Dana Lee", CheckInTime: "2023-07-01T09:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestMemoryStore_AddEquipment(t *testing.T) {
	store, _ := newTestStore(t)

	id, err := store.Add(Candidate{
		MemberID: "M1", MemberName: "A", CheckInTime: "2023-07-01T09:00",
		Equipment: []string{"Dumbbells", "Treadmill", "Dumbbells"},
	})
	require.NoError(t, err)
	rec, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dumbbells", "Treadmill"}, rec.EquipmentUsed)

	_, err = store.Add(Candidate{MemberID: "M2", MemberName: "B", CheckInTime: "2023-07-01T09:00", Equipment: []string{"Hammock"}})
	assert.ErrorIs(t, err, ErrUnknownEquipment)
	assert.Len(t, store.List(), 1)
}

func TestMemoryStore_SnapshotsAreCopies(t *testing.T) {
	store, _ := newTestStore(t)

	id, err := store.Add(Candidate{MemberID: "M1", MemberName: "A", CheckInTime: "2023-07-01T09:00", Equipment: []string{"Treadmill"}})
	require.NoError(t, err)

	snap := store.List()
	snap[0].MemberName = "changed"
	snap[0].EquipmentUsed[0] = "changed"

	rec, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "A", rec.MemberName)
	assert.Equal(t, []string{"Treadmill"}, rec.EquipmentUsed)
}

func TestMemoryStore_ActiveCount(t *testing.T) {
	store, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.Add(Candidate{MemberID: "M", MemberName: "A", CheckInTime: "2023-07-01T09:00"})
		require.NoError(t, err)
	}
	_, _, err := store.CheckOut(2)
	require.NoError(t, err)

	assert.Equal(t, 2, store.ActiveCount())
}

func TestMemoryStore_DemoRecords(t *testing.T) {
	store := NewMemoryStore(WithDemoRecords(), WithLocation(time.UTC))

	records := store.List()
	require.Len(t, records, 4)
	assert.Equal(t, "Maria Garcia", records[0].MemberName)
	assert.Equal(t, StateActive, records[0].State())
	assert.Equal(t, "Alex Johnson", records[3].MemberName)
	assert.Equal(t, StateClosed, records[3].State())
	assert.Equal(t, time.Date(2023, 6, 15, 11, 15, 0, 0, time.UTC), *records[3].CheckOutTime)
	assert.Equal(t, 2, store.ActiveCount())

	id, err := store.Add(Candidate{MemberID: "M5", MemberName: "E", CheckInTime: "2023-06-15T12:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id, err := store.Add(Candidate{MemberID: "M", MemberName: "A", CheckInTime: "2023-07-01T09:00"})
			assert.NoError(t, err)
			_, _, err = store.CheckOut(id)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			for _, rec := range store.List() {
				if rec.CheckOutTime != nil {
					assert.False(t, rec.CheckOutTime.Before(rec.CheckInTime))
				}
			}
		}()
	}
	wg.Wait()

	records := store.List()
	assert.Len(t, records, 20)
	seen := make(map[int64]bool)
	for _, rec := range records {
		assert.False(t, seen[rec.ID], "duplicate id %d", rec.ID)
		seen[rec.ID] = true
	}
}
