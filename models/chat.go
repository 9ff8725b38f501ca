package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"` // empty on the first message; the server assigns one
	Message   string `json:"message" binding:"required"`
}

// ChatReply is the outcome of a single conversation turn.
type ChatReply struct {
	SessionID            string     `json:"session_id"`
	Message              string     `json:"message"`
	Stage                Stage      `json:"stage"`
	Draft                Draft      `json:"booking_data"`
	SuggestedSlots       []TimeSlot `json:"suggested_slots,omitempty"`
	Suggestions          []string   `json:"suggestions,omitempty"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
}

// Entities is the partial attribute set an extractor pulls out of one
// message. Absent fields are zero values, never an error by themselves.
type Entities struct {
	Intent          string `json:"intent,omitempty"` // "booking" when a booking cue was detected
	ServiceType     string `json:"service_type,omitempty"`
	Date            string `json:"date,omitempty"` // 2006-01-02
	Time            string `json:"time,omitempty"` // 15:04
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Email           string `json:"email,omitempty"`
}

// Empty reports whether extraction produced nothing at all.
func (e Entities) Empty() bool {
	return e == Entities{}
}
