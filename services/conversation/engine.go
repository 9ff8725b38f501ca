package conversation

import (
	"context"
	"strings"
	"time"

	"bookline/models"
	"bookline/services/availability"
	"bookline/services/calendar"
	"bookline/services/extractor"
	"bookline/services/notification"
	"bookline/utils"

	"go.uber.org/zap"
)

// StepResult is the outcome of one conversation turn. Expected failures
// (extraction, calendar, notification) never surface here as errors; they
// are folded into the reply per the recovery rules.
type StepResult struct {
	Reply                string
	SuggestedSlots       []models.TimeSlot
	Suggestions          []string
	RequiresConfirmation bool
}

// Engine is the stage state machine. Step is pure apart from the injected
// collaborators; all of its own transition logic is non-blocking.
type Engine struct {
	Extractor    extractor.Extractor
	Availability *availability.Engine
	Calendar     calendar.Provider
	Notifier     notification.Notifier

	Now       func() time.Time // injectable clock
	CallLimit time.Duration    // timeout for each external call
}

func NewEngine(
	ext extractor.Extractor,
	avail *availability.Engine,
	cal calendar.Provider,
	notifier notification.Notifier,
) *Engine {
	return &Engine{
		Extractor:    ext,
		Availability: avail,
		Calendar:     cal,
		Notifier:     notifier,
		Now:          time.Now,
		CallLimit:    5 * time.Second,
	}
}

// maxOfferedSlots caps how many free slots one reply presents; the
// availability engine intentionally produces many overlapping candidates.
const maxOfferedSlots = 6

// Step processes one inbound message: extract entities, merge them into
// the draft, run the current stage's transition, and append both sides of
// the exchange to the transcript. The caller owns per-session
// serialization and commits the mutated state only after Step returns.
func (e *Engine) Step(ctx context.Context, state *models.ConversationState, message string) StepResult {
	logger := utils.GetLogger()

	state.AppendUser(message)
	if !state.Stage.Known() {
		logger.Warn("unknown conversation stage, treating as greeting",
			zap.String("sessionID", state.SessionID), zap.String("stage", string(state.Stage)))
		state.Stage = models.StageGreeting
	}

	var ents models.Entities
	if !state.Stage.Terminal() && !state.Draft.Confirmed() {
		ectx, cancel := context.WithTimeout(ctx, e.CallLimit)
		extracted, err := e.Extractor.ExtractEntities(ectx, message)
		cancel()
		if err != nil {
			// Extraction failures never abort a turn; carry on with the draft as-is.
			logger.Warn("entity extraction failed, continuing without entities",
				zap.String("sessionID", state.SessionID), zap.Error(err))
		} else {
			ents = extracted
		}
	}

	issues := e.mergeEntities(&state.Draft, ents)

	var res StepResult
	if len(issues) > 0 && gatheringStage(state.Stage) {
		// A named validation problem holds the stage; the reply explains it.
		res = StepResult{Reply: issues[0], Suggestions: suggestionsFor(state.Stage, state.Draft)}
	} else {
		res = e.runStage(ctx, state, message, ents)
	}

	state.AppendAssistant(res.Reply)
	return res
}

func (e *Engine) runStage(ctx context.Context, state *models.ConversationState, message string, ents models.Entities) StepResult {
	switch state.Stage {
	case models.StageGreeting:
		return e.handleGreeting(state, message, ents)
	case models.StageCollectingInfo:
		return e.handleCollectingInfo(state)
	case models.StageShowingSlots:
		return e.handleShowingSlots(ctx, state)
	case models.StageCollectingEmail:
		return e.handleCollectingEmail(state)
	case models.StageConfirming:
		return e.handleConfirming(ctx, state, message)
	case models.StageBookingFailed:
		return e.handleBookingFailed(state, message, ents)
	case models.StageCompleted:
		return StepResult{Reply: closingReply}
	default:
		return e.handleGreeting(state, message, ents)
	}
}

// gatheringStage reports whether validation problems should hold the
// conversation in place instead of letting the stage advance.
func gatheringStage(s models.Stage) bool {
	switch s {
	case models.StageGreeting, models.StageCollectingInfo,
		models.StageShowingSlots, models.StageCollectingEmail:
		return true
	}
	return false
}

// hasBookingCue is the lexical fallback when the extractor reports no
// explicit intent.
func hasBookingCue(message string) bool {
	lower := strings.ToLower(message)
	for _, cue := range []string{"book", "schedule", "appointment", "meeting", "reserve", "set up", "need", "want"} {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

func (e *Engine) today() time.Time {
	now := e.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (e *Engine) tomorrow() string {
	return e.today().AddDate(0, 0, 1).Format("2006-01-02")
}
