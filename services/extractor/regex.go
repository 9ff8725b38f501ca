package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bookline/models"
)

var (
	timeClockRe = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	timeHourRe  = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	durationRe  = regexp.MustCompile(`\b(\d+)\s*(minutes?|mins?|hours?|hrs?)\b`)
	numericDate = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	weekdayRe   = regexp.MustCompile(`\b(?:next|this)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

var bookingCues = []string{"book", "schedule", "appointment", "meeting", "reserve", "set up", "need", "want"}

// serviceKeywords maps lexical cues to catalogue service types. Order
// matters: more specific cues are checked before generic ones.
var serviceKeywords = []struct {
	cue     string
	service string
}{
	{"business", models.ServiceBusiness},
	{"creative", models.ServiceCreative},
	{"consultation", models.ServiceConsultation},
	{"therapy", models.ServiceTherapy},
	{"workshop", models.ServiceWorkshop},
	{"meeting", models.ServiceMeeting},
	{"appointment", models.ServiceConsultation},
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// RegexExtractor is the deterministic keyword/pattern extractor, used as
// the fallback when no LLM is configured and as the baseline in tests.
type RegexExtractor struct {
	Now func() time.Time // injectable clock for "today"/"tomorrow"
}

func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{Now: time.Now}
}

// ExtractEntities never fails; it returns whatever the patterns matched.
func (x *RegexExtractor) ExtractEntities(_ context.Context, text string) (models.Entities, error) {
	lower := strings.ToLower(text)
	var ents models.Entities

	for _, cue := range bookingCues {
		if strings.Contains(lower, cue) {
			ents.Intent = "booking"
			break
		}
	}

	for _, kw := range serviceKeywords {
		if strings.Contains(lower, kw.cue) {
			ents.ServiceType = kw.service
			break
		}
	}

	ents.Date = x.extractDate(lower)
	ents.Time = extractTime(lower)
	ents.DurationMinutes = extractDuration(lower)
	ents.Email = emailRe.FindString(text)

	return ents, nil
}

func (x *RegexExtractor) extractDate(lower string) string {
	today := x.Now().UTC().Truncate(24 * time.Hour)

	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1).Format("2006-01-02")
	}
	if strings.Contains(lower, "today") {
		return today.Format("2006-01-02")
	}
	if m := weekdayRe.FindStringSubmatch(lower); m != nil {
		target := weekdays[m[1]]
		ahead := (int(target) - int(today.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return today.AddDate(0, 0, ahead).Format("2006-01-02")
	}
	if m := numericDate.FindStringSubmatch(lower); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}
	return ""
}

func extractTime(lower string) string {
	if m := timeClockRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return formatClock(hour, minute, m[3])
	}
	if m := timeHourRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return formatClock(hour, 0, m[2])
	}
	return ""
}

func formatClock(hour, minute int, meridiem string) string {
	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func extractDuration(lower string) int {
	total := 0
	for _, m := range durationRe.FindAllStringSubmatch(lower, -1) {
		n, _ := strconv.Atoi(m[1])
		if strings.HasPrefix(m[2], "h") {
			total += n * 60
		} else {
			total += n
		}
	}
	return total
}
