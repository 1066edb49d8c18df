package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobprep/api/internal/models"
)

// ErrJobNotFound is returned for unknown job ids.
var ErrJobNotFound = fmt.Errorf("job %w", models.ErrNotFound)

// JobRepo wraps the jobs collection.
type JobRepo struct{ col *mongo.Collection }

func NewJobRepo(db *mongo.Database) *JobRepo {
	return &JobRepo{col: db.Collection(jobsCollection)}
}

// Create inserts job, filling in id, postedAt and status when unset.
func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	if job.EmploymentType == "" {
		job.EmploymentType = models.EmploymentFullTime
	}
	if _, err := r.col.InsertOne(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func listFilter(f models.JobFilter) bson.M {
	filter := bson.M{"status": models.JobStatusOpen}
	if f.Location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(f.Location), "$options": "i"}
	}
	if f.EmploymentType != "" {
		filter["employmentType"] = f.EmploymentType
	}
	if len(f.Skills) > 0 {
		filter["skills"] = bson.M{"$all": f.Skills}
	}
	return filter
}

// List returns one page of open jobs matching f, newest first, and the total match count.
func (r *JobRepo) List(ctx context.Context, f models.JobFilter, page, limit int) ([]models.Job, int64, error) {
	filter := listFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "postedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	jobs, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetByIDs loads jobs keyed by id. Missing ids are absent from the map.
func (r *JobRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Job, error) {
	out := make(map[string]*models.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	jobs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		out[jobs[i].ID] = &jobs[i]
	}
	return out, nil
}

// ListByRecruiter returns every job posted by recruiterID, newest first.
func (r *JobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}})
	return r.find(ctx, bson.M{"recruiterId": recruiterID}, opts)
}

// Update applies the non-nil fields of u and returns the updated job.
func (r *JobRepo) Update(ctx context.Context, id string, u models.JobUpdate) (*models.Job, error) {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Salary != nil {
		set["salary"] = *u.Salary
	}
	if u.Skills != nil {
		set["skills"] = u.Skills
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.EmploymentType != nil {
		set["employmentType"] = *u.EmploymentType
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var updated models.Job
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *JobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepo) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Job, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Job{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
