package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	busy []models.BusyInterval
	err  error
}

func (s *stubSource) GetBusyIntervals(ctx context.Context, date string, durationHint int) ([]models.BusyInterval, error) {
	return s.busy, s.err
}

func day(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2025-06-02 "+hhmm)
	require.NoError(t, err)
	return ts.UTC()
}

func testWindow(t *testing.T) Window {
	return Window{Start: day(t, "09:00"), End: day(t, "17:00")}
}

func TestFreeSlotsEmptyCalendar(t *testing.T) {
	slots := FreeSlots(testWindow(t), nil, 60*time.Minute, 15*time.Minute)

	require.Len(t, slots, 29)
	assert.Equal(t, day(t, "09:00"), slots[0].Start)
	assert.Equal(t, day(t, "10:00"), slots[0].End)
	assert.Equal(t, day(t, "16:00"), slots[28].Start)
	assert.Equal(t, day(t, "17:00"), slots[28].End)
}

func TestFreeSlotsSingleBusyBlock(t *testing.T) {
	busy := []models.BusyInterval{{Start: day(t, "10:00"), End: day(t, "11:00")}}
	slots := FreeSlots(testWindow(t), busy, 60*time.Minute, 15*time.Minute)

	// Starts 09:15 through 10:45 collide with the block; 09:00 ends exactly
	// at its start and 11:00 begins exactly at its end, both stay free.
	require.Len(t, slots, 22)
	starts := make(map[time.Time]bool, len(slots))
	for _, s := range slots {
		starts[s.Start] = true
	}
	assert.True(t, starts[day(t, "09:00")])
	assert.True(t, starts[day(t, "11:00")])
	assert.False(t, starts[day(t, "09:15")])
	assert.False(t, starts[day(t, "10:00")])
	assert.False(t, starts[day(t, "10:45")])
}

func TestFreeSlotsClipsOutOfWindowBusy(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: day(t, "07:00"), End: day(t, "09:30")},
		{Start: day(t, "16:30"), End: day(t, "18:00")},
	}
	slots := FreeSlots(testWindow(t), busy, 60*time.Minute, 15*time.Minute)

	require.NotEmpty(t, slots)
	assert.Equal(t, day(t, "09:30"), slots[0].Start)
	assert.Equal(t, day(t, "15:30"), slots[len(slots)-1].Start)
}

func TestFreeSlotsIgnoresBusyFullyOutsideWindow(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: day(t, "06:00"), End: day(t, "07:00")},
		{Start: day(t, "18:00"), End: day(t, "19:00")},
	}
	slots := FreeSlots(testWindow(t), busy, 60*time.Minute, 15*time.Minute)
	assert.Len(t, slots, 29)
}

func TestFreeSlotsUnsortedOverlappingBusy(t *testing.T) {
	// Provider order must not matter; duplicates and overlaps are harmless.
	busy := []models.BusyInterval{
		{Start: day(t, "14:00"), End: day(t, "15:00")},
		{Start: day(t, "10:00"), End: day(t, "11:00")},
		{Start: day(t, "10:30"), End: day(t, "11:30")},
		{Start: day(t, "10:00"), End: day(t, "11:00")},
	}
	slots := FreeSlots(testWindow(t), busy, 30*time.Minute, 15*time.Minute)

	for _, s := range slots {
		for _, b := range busy {
			assert.False(t, s.Overlaps(b), "slot %v overlaps busy %v", s, b)
		}
	}
}

func TestFreeSlotsDegenerateInputs(t *testing.T) {
	w := testWindow(t)

	assert.Nil(t, FreeSlots(w, nil, 0, 15*time.Minute))
	assert.Nil(t, FreeSlots(w, nil, -time.Hour, 15*time.Minute))
	assert.Nil(t, FreeSlots(w, nil, 60*time.Minute, 0))
	// Duration equal to or longer than the whole window yields nothing.
	assert.Nil(t, FreeSlots(w, nil, 8*time.Hour, 15*time.Minute))
	assert.Nil(t, FreeSlots(w, nil, 9*time.Hour, 15*time.Minute))
}

func TestFreeSlotsStepGranularity(t *testing.T) {
	// The step is a wall-clock duration; a 30-minute step must halve the
	// candidate count, not shift it by nanoseconds.
	slots := FreeSlots(testWindow(t), nil, 60*time.Minute, 30*time.Minute)

	require.Len(t, slots, 15)
	assert.Equal(t, day(t, "09:00"), slots[0].Start)
	assert.Equal(t, day(t, "09:30"), slots[1].Start)
	assert.Equal(t, day(t, "16:00"), slots[14].Start)
}

func TestFreeSlotsFullyBookedDay(t *testing.T) {
	busy := []models.BusyInterval{{Start: day(t, "09:00"), End: day(t, "17:00")}}
	assert.Empty(t, FreeSlots(testWindow(t), busy, 60*time.Minute, 15*time.Minute))
}

func TestFreeSlotsDeterministic(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: day(t, "12:00"), End: day(t, "13:00")},
		{Start: day(t, "10:00"), End: day(t, "10:30")},
	}
	first := FreeSlots(testWindow(t), busy, 45*time.Minute, 15*time.Minute)
	second := FreeSlots(testWindow(t), busy, 45*time.Minute, 15*time.Minute)
	assert.Equal(t, first, second)
}

func TestDayWindow(t *testing.T) {
	e := NewEngine(&stubSource{})

	w, ok := e.DayWindow("2025-06-02")
	require.True(t, ok)
	assert.Equal(t, day(t, "09:00"), w.Start)
	assert.Equal(t, day(t, "17:00"), w.End)

	_, ok = e.DayWindow("not-a-date")
	assert.False(t, ok)

	e.DayStart, e.DayEnd = "17:00", "09:00"
	_, ok = e.DayWindow("2025-06-02")
	assert.False(t, ok)
}

func TestSlotsForDateSourceFailure(t *testing.T) {
	e := NewEngine(&stubSource{err: errors.New("calendar unreachable")})
	assert.Nil(t, e.SlotsForDate(context.Background(), "2025-06-02", 60))
}

func TestSlotsForDateInvalidDate(t *testing.T) {
	e := NewEngine(&stubSource{})
	assert.Nil(t, e.SlotsForDate(context.Background(), "junk", 60))
}

func TestSlotsForDateHappyPath(t *testing.T) {
	e := NewEngine(&stubSource{busy: []models.BusyInterval{
		{Start: day(t, "09:00"), End: day(t, "12:00")},
	}})
	slots := e.SlotsForDate(context.Background(), "2025-06-02", 60)

	require.NotEmpty(t, slots)
	assert.Equal(t, day(t, "12:00"), slots[0].Start)
}
