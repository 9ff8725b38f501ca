package calendar

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"bookline/models"
)

// Provider supplies busy intervals for a date and commits confirmed
// bookings. GetBusyIntervals may return overlapping or duplicate
// intervals; callers must not assume they are pre-merged.
type Provider interface {
	GetBusyIntervals(ctx context.Context, date string, durationHint int) ([]models.BusyInterval, error)
	CreateBooking(ctx context.Context, draft models.Draft) (models.Confirmation, error)
}

// eventWindow computes the concrete UTC start/end of a draft's appointment.
func eventWindow(draft models.Draft) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", draft.Date+" "+draft.Time, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("draft has no bookable date/time: %w", err)
	}
	return start, start.Add(time.Duration(draft.DurationMinutes) * time.Minute), nil
}

// newConfirmationCode builds the user-facing code, e.g. CNF-20240610-0042.
func newConfirmationCode(now time.Time) string {
	return fmt.Sprintf("CNF-%s-%04d", now.UTC().Format("20060102"), rand.Intn(10000))
}
