package availability

import (
	"context"
	"sort"
	"time"

	"bookline/models"
	"bookline/utils"

	"go.uber.org/zap"
)

// Defaults for the scheduling contract. The work-day window and step are
// overridable through the engine options; these are the canonical values.
const (
	DefaultWorkDayStart    = "09:00"
	DefaultWorkDayEnd      = "17:00"
	DefaultStepMinutes     = 15
	DefaultDurationMinutes = 60
)

// BusySource supplies busy intervals for a date. Satisfied by the calendar
// providers; the engine treats any error as "no availability data".
type BusySource interface {
	GetBusyIntervals(ctx context.Context, date string, durationHint int) ([]models.BusyInterval, error)
}

// Window is a single day's bookable range, both ends UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Engine computes bookable slots for a date against a busy-interval source.
type Engine struct {
	Source    BusySource
	DayStart  string // "15:04"
	DayEnd    string
	Step      time.Duration
	CallLimit time.Duration // timeout applied to each source call
}

// NewEngine builds an engine with the canonical work-day contract.
func NewEngine(source BusySource) *Engine {
	return &Engine{
		Source:    source,
		DayStart:  DefaultWorkDayStart,
		DayEnd:    DefaultWorkDayEnd,
		Step:      DefaultStepMinutes * time.Minute,
		CallLimit: 5 * time.Second,
	}
}

// DayWindow builds the work-day window for a "2006-01-02" date. A second
// false return means the date did not parse or the window is inverted.
func (e *Engine) DayWindow(date string) (Window, bool) {
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return Window{}, false
	}
	start, err1 := time.Parse("15:04", e.DayStart)
	end, err2 := time.Parse("15:04", e.DayEnd)
	if err1 != nil || err2 != nil {
		return Window{}, false
	}
	w := Window{
		Start: time.Date(d.Year(), d.Month(), d.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC),
		End:   time.Date(d.Year(), d.Month(), d.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC),
	}
	if !w.End.After(w.Start) {
		return Window{}, false
	}
	return w, true
}

// SlotsForDate fetches busy intervals for the date and returns every free
// slot of the requested duration. Source failures degrade to an empty
// list; they never propagate to the conversation.
func (e *Engine) SlotsForDate(ctx context.Context, date string, durationMinutes int) []models.TimeSlot {
	logger := utils.GetLogger()

	window, ok := e.DayWindow(date)
	if !ok {
		logger.Warn("availability: unusable date or window", zap.String("date", date))
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, e.CallLimit)
	defer cancel()
	busy, err := e.Source.GetBusyIntervals(callCtx, date, durationMinutes)
	if err != nil {
		logger.Error("availability: busy-interval query failed, assuming no availability",
			zap.String("date", date), zap.Error(err))
		return nil
	}

	return FreeSlots(window, busy, time.Duration(durationMinutes)*time.Minute, e.Step)
}

// FreeSlots walks candidate starts through the window in fixed steps and
// emits every candidate of exactly the requested duration that overlaps no
// busy interval. Candidates may overlap each other; that is intentional,
// each is an independently bookable window.
func FreeSlots(window Window, busy []models.BusyInterval, duration, step time.Duration) []models.TimeSlot {
	if duration <= 0 || step <= 0 {
		return nil
	}
	length := window.End.Sub(window.Start)
	if length <= 0 || duration >= length {
		return nil
	}

	// Clip intervals to the window and drop the ones outside it entirely.
	// Overlapping or duplicate intervals from the provider are kept as-is.
	clipped := make([]models.BusyInterval, 0, len(busy))
	for _, b := range busy {
		s, e := b.Start.UTC(), b.End.UTC()
		if s.Before(window.Start) {
			s = window.Start
		}
		if e.After(window.End) {
			e = window.End
		}
		if e.After(s) {
			clipped = append(clipped, models.BusyInterval{Start: s, End: e})
		}
	}
	// Stable sort keeps provider order for equal starts, so output is
	// deterministic for identical input.
	sort.SliceStable(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	var slots []models.TimeSlot
	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		candidate := models.TimeSlot{Start: start, End: start.Add(duration)}
		free := true
		for _, b := range clipped {
			// Sorted by start: once the candidate ends before this busy
			// interval begins, no later interval can overlap either.
			if !candidate.End.After(b.Start) {
				break
			}
			if candidate.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, candidate)
		}
	}
	return slots
}
