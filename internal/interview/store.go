package interview

import (
	"context"
	"time"

	"jobprep/api/internal/models"
)

// Store persists interview sessions. Lookups of unknown ids return an error
// wrapping models.ErrNotFound.
type Store interface {
	Create(ctx context.Context, session *models.InterviewSession) error
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
	// AppendTurns appends turns to the conversation in a single write.
	AppendTurns(ctx context.Context, id string, turns ...models.Turn) error
	// SetFeedback replaces any existing feedback and returns the updated session.
	SetFeedback(ctx context.Context, id string, feedback models.Feedback, endedAt time.Time) (*models.InterviewSession, error)
	// ListByOwner returns the owner's sessions, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.InterviewSession, error)
	// ListEndedSince returns sessions whose feedback was stored at or after since, oldest first.
	ListEndedSince(ctx context.Context, since time.Time) ([]models.InterviewSession, error)
	Delete(ctx context.Context, id string) error
}
