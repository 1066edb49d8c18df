package handlers

import (
	"context"

	"jobprep/api/internal/interview"
	"jobprep/api/internal/models"
)

// UserRepository captures the persistence operations required by handlers.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*models.User, error)
	UpdateUser(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter, page, limit int) ([]models.Job, int64, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error)
	Update(ctx context.Context, id string, update models.JobUpdate) (*models.Job, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	FindByCandidateAndJob(ctx context.Context, candidateID, jobID string) (*models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	ListByJobs(ctx context.Context, jobIDs []string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Application, error)
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
}

// InterviewService is the orchestrator surface the interview endpoints use.
type InterviewService interface {
	Start(ctx context.Context, ownerID string, in interview.StartInput) (*models.InterviewSession, string, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (string, error)
	End(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Get(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	ListForOwner(ctx context.Context, ownerID string) ([]models.InterviewSession, error)
	Delete(ctx context.Context, sessionID, requesterID string, requesterIsAdmin bool) error
}
