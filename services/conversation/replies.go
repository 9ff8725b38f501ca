package conversation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bookline/models"
)

const (
	askServiceReply = "I'd be happy to help you book an appointment! What type of service would you like? (consultation, therapy session, workshop, meeting, business consultation, creative session)"

	invalidEmailReply = "That doesn't look like a valid email address. Please enter a valid email (e.g., user@example.com)."

	closingReply = "Thank you! If you need to book another appointment or have any questions, just let me know. Have a great day!"

	bookingFailedReply = "I'm sorry - I couldn't complete that booking. Nothing was reserved. When you're ready, tell me again what you'd like to book and we'll start fresh."
)

// typicalDurations is display-only; the draft still defaults to 60 minutes.
var typicalDurations = map[string]int{
	models.ServiceConsultation: 60,
	models.ServiceTherapy:      90,
	models.ServiceWorkshop:     120,
	models.ServiceMeeting:      60,
	models.ServiceBusiness:     60,
	models.ServiceCreative:     90,
}

func greetingReply() string {
	var sb strings.Builder
	sb.WriteString("Hello! I'm your booking assistant. I can help you schedule appointments for:\n\n")
	for _, svc := range models.ServiceCatalogue {
		sb.WriteString(fmt.Sprintf("- %s (typically %d minutes)\n", svc, typicalDurations[svc]))
	}
	sb.WriteString("\nYou can simply tell me what you need, like:\n")
	sb.WriteString("- 'I need a consultation tomorrow at 10 AM'\n")
	sb.WriteString("- 'Book a therapy session for next Monday'\n")
	sb.WriteString("- 'Schedule a workshop for next week'")
	return sb.String()
}

// formatSlots groups offered slots into morning/afternoon/evening with a
// running index the user can answer with.
func formatSlots(slots []models.TimeSlot) string {
	if len(slots) == 0 {
		return "No available slots found."
	}
	var morning, afternoon, evening []string
	idx := 1
	for _, s := range slots {
		line := fmt.Sprintf("%d. %s - %s", idx, s.Start.Format("3:04 PM"), s.End.Format("3:04 PM"))
		switch h := s.Start.Hour(); {
		case h < 12:
			morning = append(morning, line)
		case h < 17:
			afternoon = append(afternoon, line)
		default:
			evening = append(evening, line)
		}
		idx++
	}
	var parts []string
	if len(morning) > 0 {
		parts = append(parts, "Morning:\n"+strings.Join(morning, "\n"))
	}
	if len(afternoon) > 0 {
		parts = append(parts, "Afternoon:\n"+strings.Join(afternoon, "\n"))
	}
	if len(evening) > 0 {
		parts = append(parts, "Evening:\n"+strings.Join(evening, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// suggestionsFor returns up to three contextual quick replies.
func suggestionsFor(stage models.Stage, draft models.Draft) []string {
	var out []string
	switch stage {
	case models.StageGreeting:
		out = append(out, "Book a meeting", "Show available slots")
	case models.StageShowingSlots, models.StageCollectingEmail, models.StageConfirming:
		if draft.ServiceType != "" {
			out = append(out, fmt.Sprintf("Book another %s", draft.ServiceType))
		}
		out = append(out, "Confirm this time", "Show me other options", "Change the date")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

var (
	slotPhraseRe = regexp.MustCompile(`(?:slot|option|number)\s*(\d+)`)
	bareNumberRe = regexp.MustCompile(`\b(\d{1,2})\b`)
)

var ordinals = map[string]int{
	"first": 0, "second": 1, "third": 2, "fourth": 3, "fifth": 4,
	"earliest": 0, "any": 0,
}

// pickSlot resolves a user's slot choice ("2", "the first one", "option 3",
// "10:00") against the offered list. Returns the index or -1.
func pickSlot(message string, offered []models.TimeSlot) int {
	if len(offered) == 0 {
		return -1
	}
	lower := strings.ToLower(message)

	if strings.Contains(lower, "last") {
		return len(offered) - 1
	}
	for word, idx := range ordinals {
		if strings.Contains(lower, word) && idx < len(offered) {
			return idx
		}
	}
	if m := slotPhraseRe.FindStringSubmatch(lower); m != nil {
		if idx, _ := strconv.Atoi(m[1]); idx >= 1 && idx <= len(offered) {
			return idx - 1
		}
	}
	for i, s := range offered {
		if strings.Contains(lower, strings.ToLower(s.Start.Format("3:04 pm"))) ||
			strings.Contains(lower, s.Start.Format("15:04")) ||
			strings.Contains(lower, s.Start.Format("3pm")) ||
			strings.Contains(lower, s.Start.Format("3 pm")) {
			return i
		}
	}
	if m := bareNumberRe.FindStringSubmatch(lower); m != nil {
		if idx, _ := strconv.Atoi(m[1]); idx >= 1 && idx <= len(offered) {
			return idx - 1
		}
	}
	return -1
}
