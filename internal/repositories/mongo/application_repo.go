package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobprep/api/internal/models"
)

var (
	ErrApplicationNotFound = fmt.Errorf("application %w", models.ErrNotFound)
	ErrAlreadyApplied      = fmt.Errorf("already applied to this job: %w", models.ErrConflict)
)

// ApplicationRepo wraps the applications collection.
type ApplicationRepo struct{ col *mongo.Collection }

func NewApplicationRepo(db *mongo.Database) *ApplicationRepo {
	return &ApplicationRepo{col: db.Collection(applicationsCollection)}
}

// Create inserts app. A second application for the same candidate and job
// fails with ErrAlreadyApplied.
func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	if app.Status == "" {
		app.Status = models.ApplicationApplied
	}
	if _, err := r.col.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return app, nil
}

// FindByCandidateAndJob returns ErrApplicationNotFound when the candidate has not applied.
func (r *ApplicationRepo) FindByCandidateAndJob(ctx context.Context, candidateID, jobID string) (*models.Application, error) {
	return r.findOne(ctx, bson.M{"candidateId": candidateID, "jobId": jobID})
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ApplicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]models.Application, error) {
	return r.find(ctx, bson.M{"candidateId": candidateID})
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	return r.find(ctx, bson.M{"jobId": jobID})
}

// ListByJobs returns applications for any of jobIDs.
func (r *ApplicationRepo) ListByJobs(ctx context.Context, jobIDs []string) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return []models.Application{}, nil
	}
	return r.find(ctx, bson.M{"jobId": bson.M{"$in": jobIDs}})
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Application, error) {
	var updated models.Application
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteByJob removes every application for jobID and reports how many were removed.
func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ApplicationRepo) findOne(ctx context.Context, filter bson.M) (*models.Application, error) {
	var app models.Application
	if err := r.col.FindOne(ctx, filter).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// find returns matches newest first.
func (r *ApplicationRepo) find(ctx context.Context, filter bson.M) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Application{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
