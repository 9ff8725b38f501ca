package models

import "time"

// Stage is the discrete state of a session's dialog progress.
type Stage string

const (
	StageGreeting        Stage = "greeting"
	StageCollectingInfo  Stage = "collecting_info"
	StageShowingSlots    Stage = "showing_slots"
	StageCollectingEmail Stage = "collecting_email"
	StageConfirming      Stage = "confirming"
	StageCompleted       Stage = "completed"
	StageBookingFailed   Stage = "booking_failed"
)

// Known reports whether s is one of the recognised stages. Anything else is
// treated as greeting by the engine rather than rejected.
func (s Stage) Known() bool {
	switch s {
	case StageGreeting, StageCollectingInfo, StageShowingSlots,
		StageCollectingEmail, StageConfirming, StageCompleted, StageBookingFailed:
		return true
	}
	return false
}

// Terminal reports whether the stage absorbs all further messages.
func (s Stage) Terminal() bool {
	return s == StageCompleted
}

// Message is a single transcript entry.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ConversationState is the full per-session state. It is owned by exactly
// one session; turns for the same session never run concurrently.
type ConversationState struct {
	SessionID    string     `json:"sessionId"`
	Stage        Stage      `json:"stage"`
	Draft        Draft      `json:"draft"`
	History      []Message  `json:"history"`
	OfferedSlots []TimeSlot `json:"offeredSlots,omitempty"`
}

// NewConversationState returns a fresh greeting-stage state for a session.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID: sessionID,
		Stage:     StageGreeting,
	}
}

// Clone returns a deep copy. Turns mutate a clone and commit it only once
// the turn has fully completed, so a failed turn never leaves the stored
// state half-written.
func (s *ConversationState) Clone() *ConversationState {
	cp := *s
	cp.History = append([]Message(nil), s.History...)
	cp.OfferedSlots = append([]TimeSlot(nil), s.OfferedSlots...)
	return &cp
}

// AppendUser records an inbound message on the transcript.
func (s *ConversationState) AppendUser(text string) {
	s.History = append(s.History, Message{Role: "user", Text: text, Timestamp: time.Now().UTC()})
}

// AppendAssistant records the produced reply on the transcript.
func (s *ConversationState) AppendAssistant(text string) {
	s.History = append(s.History, Message{Role: "assistant", Text: text, Timestamp: time.Now().UTC()})
}
