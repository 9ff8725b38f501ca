package notification

import (
	"context"

	"bookline/models"
)

// Notifier sends the booking confirmation. Fire-and-forget from the state
// machine's perspective: a failure changes reply wording, never the stage.
type Notifier interface {
	Notify(ctx context.Context, draft models.Draft) error
}
