package session

import (
	"context"
	"sync"

	"bookline/models"
	"bookline/services/conversation"
	"bookline/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager serializes turns per session and owns the load, step, commit
// cycle around the conversation engine. Concurrent requests for the same
// session queue on a per-session mutex; different sessions run in
// parallel.
type Manager struct {
	Store  Store
	Engine *conversation.Engine

	locks sync.Map // sessionID -> *sync.Mutex
}

func NewManager(store Store, engine *conversation.Engine) *Manager {
	return &Manager{Store: store, Engine: engine}
}

// TurnResult is what one committed turn hands back to the transport layer.
type TurnResult struct {
	SessionID string
	State     *models.ConversationState
	Step      conversation.StepResult
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// HandleMessage runs one conversation turn. An empty sessionID starts a
// new session. The engine mutates a private clone; the stored state only
// changes if the save succeeds, so a failed commit leaves the previous
// turn intact.
func (m *Manager) HandleMessage(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	logger := utils.GetLogger()

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	mu := m.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := m.Store.Load(ctx, sessionID)
	if err == ErrNotFound {
		state = models.NewConversationState(sessionID)
	} else if err != nil {
		return nil, err
	}

	candidate := state.Clone()
	res := m.Engine.Step(ctx, candidate, message)

	if err := m.Store.Save(ctx, candidate); err != nil {
		logger.Error("failed to persist session turn",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	return &TurnResult{SessionID: sessionID, State: candidate, Step: res}, nil
}

// History returns the transcript for a session.
func (m *Manager) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	state, err := m.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.History, nil
}

// Reset deletes a session so the next message starts a fresh conversation.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	mu := m.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()
	if err := m.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	m.locks.Delete(sessionID)
	return nil
}
