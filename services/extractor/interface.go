package extractor

import (
	"context"

	"bookline/models"
)

// Extractor turns free text into structured booking attributes. Extraction
// is best effort: missing fields are zero values, and implementations must
// be side-effect free so a failed turn can safely retry the same message.
type Extractor interface {
	ExtractEntities(ctx context.Context, text string) (models.Entities, error)
}
