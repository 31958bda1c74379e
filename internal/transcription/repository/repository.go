package repository

import (
	"context"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

type TranscriptionRepository interface {
	Create(ctx context.Context, t *models.Transcription) error
	GetByID(ctx context.Context, id string) (*models.Transcription, error)
	ListByUser(ctx context.Context, userID string) ([]models.Transcription, error)
	UpdateTitle(ctx context.Context, id, title string) error
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	UpdateDuration(ctx context.Context, id string, seconds float64) error
	UpdateRefinementPrompt(ctx context.Context, id, prompt string) error
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// IdempotencyGuard is a best-effort duplicate suppressor, not a lock:
// Check and Accept are independent calls with a race window between them.
type IdempotencyGuard interface {
	Check(ctx context.Context, token string) (bool, error)
	Accept(ctx context.Context, token string) error
}
