package models

import "time"

// TimeSlot is a fixed-duration candidate booking window. Both timestamps
// are UTC; End is strictly after Start and End-Start equals the requested
// duration exactly.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyInterval is an externally reported range during which the calendar
// is unavailable. Intervals from a provider may overlap or duplicate; the
// availability engine tolerates both.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the slot intersects the busy interval under the
// half-open [start, end) convention.
func (s TimeSlot) Overlaps(b BusyInterval) bool {
	return s.Start.Before(b.End) && s.End.After(b.Start)
}

// Confirmation is what the calendar provider returns for a committed booking.
type Confirmation struct {
	ID   string `json:"confirmationId"`
	Code string `json:"confirmationCode"`
}

// Booking is the durable record written by the internal calendar provider.
type Booking struct {
	ID          string    `json:"id" bson:"id"`
	ServiceType string    `json:"serviceType" bson:"serviceType"`
	Date        string    `json:"date" bson:"date"`
	Start       time.Time `json:"start" bson:"start"`
	End         time.Time `json:"end" bson:"end"`
	Email       string    `json:"email" bson:"email"`
	Code        string    `json:"code" bson:"code"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
