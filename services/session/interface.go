package session

import (
	"context"
	"errors"

	"bookline/models"
)

// ErrNotFound marks a session that does not exist or has expired.
var ErrNotFound = errors.New("session not found or expired")

// Store persists conversation state between turns. Save always rewrites
// the full state and refreshes the TTL.
type Store interface {
	Load(ctx context.Context, sessionID string) (*models.ConversationState, error)
	Save(ctx context.Context, state *models.ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}
