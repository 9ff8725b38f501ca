package conversation

import (
	"fmt"
	"time"

	"bookline/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidEmail reports whether s is a well-formed email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// mergeEntities folds newly extracted attributes into the draft. Values
// that fail validation are not applied; each produces a named user-facing
// message and the caller keeps the conversation in its current
// information-gathering stage. A confirmed draft is never touched.
func (e *Engine) mergeEntities(draft *models.Draft, ents models.Entities) []string {
	if draft.Confirmed() {
		return nil
	}
	var issues []string

	if ents.ServiceType != "" && models.KnownService(ents.ServiceType) {
		draft.ServiceType = ents.ServiceType
	}

	if ents.Date != "" {
		if d, err := time.ParseInLocation("2006-01-02", ents.Date, time.UTC); err != nil {
			issues = append(issues, "I couldn't read that date. Could you give it as YYYY-MM-DD, or say something like \"tomorrow\"?")
		} else if d.Before(e.today()) {
			issues = append(issues, fmt.Sprintf("%s is in the past. Which upcoming day should I look at?", ents.Date))
		} else {
			draft.Date = ents.Date
		}
	}

	if ents.Time != "" {
		if t, err := time.Parse("15:04", ents.Time); err != nil {
			issues = append(issues, "I couldn't read that time. Could you give it like \"2pm\" or \"14:00\"?")
		} else if !withinBusinessHours(t, e.Availability.DayStart, e.Availability.DayEnd) {
			issues = append(issues, fmt.Sprintf("We take appointments between %s and %s. What time in that window works for you?",
				e.Availability.DayStart, e.Availability.DayEnd))
		} else {
			draft.Time = ents.Time
		}
	}

	if ents.DurationMinutes != 0 {
		if ents.DurationMinutes < models.MinDurationMinutes || ents.DurationMinutes > models.MaxDurationMinutes {
			issues = append(issues, fmt.Sprintf("Appointments run between %d and %d minutes. How long should yours be?",
				models.MinDurationMinutes, models.MaxDurationMinutes))
		} else {
			draft.DurationMinutes = ents.DurationMinutes
		}
	}

	if ents.Email != "" && ValidEmail(ents.Email) {
		draft.ContactEmail = ents.Email
	}

	return issues
}

// withinBusinessHours checks a bare time-of-day against the work window.
// The end bound is exclusive: a 17:00 start on a 09:00-17:00 day is out.
func withinBusinessHours(t time.Time, dayStart, dayEnd string) bool {
	start, err1 := time.Parse("15:04", dayStart)
	end, err2 := time.Parse("15:04", dayEnd)
	if err1 != nil || err2 != nil {
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= start.Hour()*60+start.Minute() && minutes < end.Hour()*60+end.Minute()
}
