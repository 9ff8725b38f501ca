package conversation

import (
	"context"
	"fmt"
	"strings"

	"bookline/models"
	"bookline/utils"

	"go.uber.org/zap"
)

func (e *Engine) handleGreeting(state *models.ConversationState, message string, ents models.Entities) StepResult {
	wantsBooking := ents.Intent == "booking" || hasBookingCue(message)
	if !wantsBooking && ents.Empty() {
		return StepResult{Reply: greetingReply(), Suggestions: suggestionsFor(models.StageGreeting, state.Draft)}
	}

	if readyForSlots(state.Draft) {
		state.Stage = models.StageShowingSlots
		return StepResult{
			Reply:       checkSlotsReply(state.Draft),
			Suggestions: suggestionsFor(state.Stage, state.Draft),
		}
	}

	state.Stage = models.StageCollectingInfo
	return StepResult{Reply: askForMissing(state.Draft), Suggestions: suggestionsFor(state.Stage, state.Draft)}
}

// A known service type is enough to go look at the calendar; date and
// duration default later. Date and time prompts on the greeting turn are
// enrichment, never a gate.
func (e *Engine) handleCollectingInfo(state *models.ConversationState) StepResult {
	if state.Draft.ServiceType == "" {
		return StepResult{Reply: askServiceReply}
	}
	state.Stage = models.StageShowingSlots
	return StepResult{
		Reply:       checkSlotsReply(state.Draft),
		Suggestions: suggestionsFor(state.Stage, state.Draft),
	}
}

func (e *Engine) handleShowingSlots(ctx context.Context, state *models.ConversationState) StepResult {
	if state.Draft.DurationMinutes == 0 {
		state.Draft.DurationMinutes = 60
	}
	if state.Draft.Date == "" {
		state.Draft.Date = e.tomorrow()
	}

	slots := e.Availability.SlotsForDate(ctx, state.Draft.Date, state.Draft.DurationMinutes)
	if len(slots) == 0 {
		state.OfferedSlots = nil
		return StepResult{
			Reply: fmt.Sprintf("I'm sorry, there are no available %d-minute slots on %s. Would you like to try another day?",
				state.Draft.DurationMinutes, state.Draft.Date),
			Suggestions: []string{"Try tomorrow", "Change the date"},
		}
	}
	if len(slots) > maxOfferedSlots {
		slots = slots[:maxOfferedSlots]
	}
	// Replaces any previously offered slots; choices always refer to the latest list.
	state.OfferedSlots = slots

	if state.Draft.ContactEmail == "" {
		state.Stage = models.StageCollectingEmail
		return StepResult{
			Reply: fmt.Sprintf("Here are the available slots for %s on %s:\n\n%s\n\nBefore we pick one, what email address should the confirmation go to?",
				state.Draft.ServiceType, state.Draft.Date, formatSlots(slots)),
			SuggestedSlots: slots,
		}
	}

	state.Stage = models.StageConfirming
	return StepResult{
		Reply: fmt.Sprintf("Here are the available slots for %s on %s:\n\n%s\n\nWhich one would you like? You can reply with a number like \"1\" or a time like \"10am\".",
			state.Draft.ServiceType, state.Draft.Date, formatSlots(slots)),
		SuggestedSlots:       slots,
		Suggestions:          suggestionsFor(state.Stage, state.Draft),
		RequiresConfirmation: true,
	}
}

func (e *Engine) handleCollectingEmail(state *models.ConversationState) StepResult {
	if state.Draft.ContactEmail == "" {
		return StepResult{Reply: invalidEmailReply, SuggestedSlots: state.OfferedSlots}
	}
	state.Stage = models.StageConfirming
	return StepResult{
		Reply: fmt.Sprintf("Thank you! I've saved your email as %s.\n\nNow, which slot would you like? You can reply with a number like \"1\" or a time like \"10am\".",
			state.Draft.ContactEmail),
		SuggestedSlots:       state.OfferedSlots,
		Suggestions:          suggestionsFor(state.Stage, state.Draft),
		RequiresConfirmation: true,
	}
}

func (e *Engine) handleConfirming(ctx context.Context, state *models.ConversationState, message string) StepResult {
	logger := utils.GetLogger()

	if idx := pickSlot(message, state.OfferedSlots); idx >= 0 {
		chosen := state.OfferedSlots[idx]
		state.Draft.Date = chosen.Start.Format("2006-01-02")
		state.Draft.Time = chosen.Start.Format("15:04")
		state.Draft.DurationMinutes = int(chosen.End.Sub(chosen.Start).Minutes())
	} else if len(state.OfferedSlots) > 0 && !affirmative(message) {
		return StepResult{
			Reply:                "I didn't catch which slot you meant. Could you reply with a number like \"1\" or a time like \"10am\"?",
			SuggestedSlots:       state.OfferedSlots,
			RequiresConfirmation: true,
		}
	}

	// Fill remaining defaults so the calendar call always gets a full event.
	if state.Draft.Date == "" {
		state.Draft.Date = e.tomorrow()
	}
	if state.Draft.Time == "" {
		state.Draft.Time = "10:00"
	}
	if state.Draft.DurationMinutes == 0 {
		state.Draft.DurationMinutes = 60
	}

	cctx, cancel := context.WithTimeout(ctx, e.CallLimit)
	conf, err := e.Calendar.CreateBooking(cctx, state.Draft)
	cancel()
	if err != nil {
		logger.Error("booking creation failed",
			zap.String("sessionID", state.SessionID),
			zap.String("date", state.Draft.Date),
			zap.Error(err))
		state.Stage = models.StageBookingFailed
		return StepResult{
			Reply: "I'm sorry - something went wrong while creating your booking, so nothing was reserved. Would you like to try again?",
		}
	}
	state.Draft.ConfirmationID = conf.ID
	state.Draft.ConfirmationCode = conf.Code
	state.Stage = models.StageCompleted

	nctx, ncancel := context.WithTimeout(ctx, e.CallLimit)
	notifyErr := e.Notifier.Notify(nctx, state.Draft)
	ncancel()
	booked := fmt.Sprintf("Your %s on %s at %s (%d minutes) is booked at Main Office - Conference Room A! Your confirmation number is %s.",
		state.Draft.ServiceType, state.Draft.Date, state.Draft.Time,
		state.Draft.DurationMinutes, state.Draft.ConfirmationCode)
	if notifyErr != nil {
		logger.Warn("confirmation email failed",
			zap.String("sessionID", state.SessionID), zap.Error(notifyErr))
		return StepResult{
			Reply: booked + " I couldn't send the confirmation email, so please note the number down.",
		}
	}
	return StepResult{
		Reply: fmt.Sprintf("%s A confirmation email is on its way to %s.", booked, state.Draft.ContactEmail),
	}
}

func (e *Engine) handleBookingFailed(state *models.ConversationState, message string, ents models.Entities) StepResult {
	if ents.Intent == "booking" || hasBookingCue(message) || !ents.Empty() {
		// Start over with a clean draft; the failed attempt left nothing
		// reserved. Entities from this message seed the new draft.
		state.Draft = models.Draft{}
		state.OfferedSlots = nil
		state.Stage = models.StageGreeting
		e.mergeEntities(&state.Draft, ents)
		return e.handleGreeting(state, message, ents)
	}
	return StepResult{Reply: bookingFailedReply}
}

// readyForSlots reports whether one message carried the complete attribute
// set, letting greeting jump straight to the slot offer in the same turn.
func readyForSlots(d models.Draft) bool {
	return d.ServiceType != "" && d.Date != "" && d.Time != ""
}

func checkSlotsReply(d models.Draft) string {
	if d.Date == "" {
		return fmt.Sprintf("Great! Let me check available %s slots for tomorrow.", d.ServiceType)
	}
	return fmt.Sprintf("Great! Let me check available %s slots for %s.", d.ServiceType, d.Date)
}

// askForMissing names the first unset required attribute.
func askForMissing(d models.Draft) string {
	switch {
	case d.ServiceType == "":
		return askServiceReply
	case d.Date == "":
		return fmt.Sprintf("A %s, great choice! What day works for you? You can say \"tomorrow\" or give a date.", d.ServiceType)
	case d.Time == "":
		return fmt.Sprintf("What time on %s would you like? We take appointments between 9 AM and 5 PM.", d.Date)
	default:
		return "Could you tell me a bit more about the appointment you'd like?"
	}
}

func affirmative(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, w := range []string{"yes", "yep", "yeah", "sure", "ok", "okay", "confirm", "sounds good", "that works"} {
		if lower == w || strings.HasPrefix(lower, w+" ") || strings.HasPrefix(lower, w+",") {
			return true
		}
	}
	return false
}
