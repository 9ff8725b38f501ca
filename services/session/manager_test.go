package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookline/models"
	"bookline/services/availability"
	"bookline/services/calendar"
	"bookline/services/conversation"
	"bookline/services/extractor"
	"bookline/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendar struct{}

func (fakeCalendar) GetBusyIntervals(ctx context.Context, date string, durationHint int) ([]models.BusyInterval, error) {
	return nil, nil
}

func (fakeCalendar) CreateBooking(ctx context.Context, draft models.Draft) (models.Confirmation, error) {
	return models.Confirmation{ID: "bk-1", Code: "CNF-20250601-0001"}, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Notify(ctx context.Context, draft models.Draft) error { return nil }

var _ calendar.Provider = fakeCalendar{}
var _ notification.Notifier = fakeNotifier{}

func newTestManager() *Manager {
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	cal := fakeCalendar{}
	engine := conversation.NewEngine(
		&extractor.RegexExtractor{Now: clock},
		availability.NewEngine(cal),
		cal,
		fakeNotifier{},
	)
	engine.Now = clock
	return NewManager(NewMemoryStore(), engine)
}

func TestHandleMessageAssignsSessionID(t *testing.T) {
	m := newTestManager()

	turn, err := m.HandleMessage(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, turn.SessionID)
	assert.Equal(t, models.StageGreeting, turn.State.Stage)
	assert.NotEmpty(t, turn.Step.Reply)
}

func TestHandleMessagePersistsAcrossTurns(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	first, err := m.HandleMessage(ctx, "", "I need a consultation tomorrow at 10am")
	require.NoError(t, err)
	assert.Equal(t, models.StageShowingSlots, first.State.Stage)

	second, err := m.HandleMessage(ctx, first.SessionID, "ok")
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, models.StageCollectingEmail, second.State.Stage)
	assert.Len(t, second.State.History, 4)
}

func TestHistoryUnknownSession(t *testing.T) {
	m := newTestManager()

	_, err := m.History(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetDropsSession(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	turn, err := m.HandleMessage(ctx, "", "I need a consultation tomorrow at 10am")
	require.NoError(t, err)
	require.NoError(t, m.Reset(ctx, turn.SessionID))

	_, err = m.History(ctx, turn.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Reusing the ID starts a fresh conversation.
	fresh, err := m.HandleMessage(ctx, turn.SessionID, "hello")
	require.NoError(t, err)
	assert.Equal(t, models.StageGreeting, fresh.State.Stage)
	assert.Len(t, fresh.State.History, 2)
}

func TestConcurrentTurnsSameSessionAreSerialized(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	turn, err := m.HandleMessage(ctx, "", "hello")
	require.NoError(t, err)

	const turns = 10
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.HandleMessage(ctx, turn.SessionID, "hello again")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := m.History(ctx, turn.SessionID)
	require.NoError(t, err)
	// Each turn appends exactly one user and one assistant message.
	assert.Len(t, history, 2*(turns+1))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := models.NewConversationState("s1")
	state.AppendUser("hi")
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	loaded.AppendUser("mutated")

	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.History, 1)
}
