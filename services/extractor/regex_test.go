package extractor

import (
	"context"
	"testing"
	"time"

	"bookline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins "today" to Sunday 2025-06-01 so relative dates are stable.
func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestExtractor() *RegexExtractor {
	return &RegexExtractor{Now: fixedClock}
}

func TestExtractEntitiesFullSentence(t *testing.T) {
	x := newTestExtractor()

	ents, err := x.ExtractEntities(context.Background(), "I need a consultation tomorrow at 10am")
	require.NoError(t, err)

	assert.Equal(t, "booking", ents.Intent)
	assert.Equal(t, models.ServiceConsultation, ents.ServiceType)
	assert.Equal(t, "2025-06-02", ents.Date)
	assert.Equal(t, "10:00", ents.Time)
}

func TestExtractEntitiesServiceKeywords(t *testing.T) {
	x := newTestExtractor()
	tests := []struct {
		text string
		want string
	}{
		{"book a meeting", models.ServiceMeeting},
		{"I'd like a therapy session", models.ServiceTherapy},
		{"schedule a workshop please", models.ServiceWorkshop},
		{"a business consultation next week", models.ServiceBusiness},
		{"creative session for my team", models.ServiceCreative},
		{"just an appointment", models.ServiceConsultation},
		{"hello there", ""},
	}
	for _, tc := range tests {
		ents, err := x.ExtractEntities(context.Background(), tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ents.ServiceType, "text: %q", tc.text)
	}
}

func TestExtractDate(t *testing.T) {
	x := newTestExtractor()
	tests := []struct {
		text string
		want string
	}{
		{"see you tomorrow", "2025-06-02"},
		{"later today", "2025-06-01"},
		{"next monday works", "2025-06-02"},
		{"this friday", "2025-06-06"},
		{"on 6/15/2025", "2025-06-15"},
		{"on 6-15-25", "2025-06-15"},
		{"on 13/40/2025", ""},
		{"no date here", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, x.extractDate(tc.text), "text: %q", tc.text)
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"at 10am", "10:00"},
		{"at 2:30 pm", "14:30"},
		{"at 2:30pm", "14:30"},
		{"at 14:30", "14:30"},
		{"at 12am", "00:00"},
		{"at 12pm", "12:00"},
		{"no time here", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, extractTime(tc.text), "text: %q", tc.text)
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"for 90 minutes", 90},
		{"for 2 hours", 120},
		{"1 hour and 30 minutes", 90},
		{"45 mins should do", 45},
		{"no duration", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, extractDuration(tc.text), "text: %q", tc.text)
	}
}

func TestExtractEmail(t *testing.T) {
	x := newTestExtractor()

	ents, err := x.ExtractEntities(context.Background(), "reach me at jane.doe+test@mail.example.org thanks")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe+test@mail.example.org", ents.Email)
}

func TestExtractEntitiesNothingMatches(t *testing.T) {
	x := newTestExtractor()

	ents, err := x.ExtractEntities(context.Background(), "how is the weather")
	require.NoError(t, err)
	assert.True(t, ents.Empty())
}
