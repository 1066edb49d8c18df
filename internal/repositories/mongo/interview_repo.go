package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobprep/api/internal/interview"
	"jobprep/api/internal/models"
)

var ErrInterviewNotFound = fmt.Errorf("interview %w", models.ErrNotFound)

var _ interview.Store = (*InterviewRepo)(nil)

// InterviewRepo stores interview sessions and satisfies interview.Store.
type InterviewRepo struct{ col *mongo.Collection }

func NewInterviewRepo(db *mongo.Database) *InterviewRepo {
	return &InterviewRepo{col: db.Collection(interviewsCollection)}
}

func (r *InterviewRepo) Create(ctx context.Context, session *models.InterviewSession) error {
	if session.ID == "" {
		return errors.New("interview id required")
	}
	if session.Conversation == nil {
		session.Conversation = []models.Turn{}
	}
	_, err := r.col.InsertOne(ctx, session)
	return err
}

func (r *InterviewRepo) GetByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &session, nil
}

// AppendTurns pushes all turns in one update so an answer and its follow-up
// question are never stored apart.
func (r *InterviewRepo) AppendTurns(ctx context.Context, id string, turns ...models.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	update := bson.M{"$push": bson.M{"conversation": bson.M{"$each": turns}}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepo) SetFeedback(ctx context.Context, id string, feedback models.Feedback, endedAt time.Time) (*models.InterviewSession, error) {
	update := bson.M{"$set": bson.M{"feedback": feedback, "endedAt": endedAt}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.InterviewSession
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *InterviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.InterviewSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"ownerId": ownerID}, opts)
}

func (r *InterviewRepo) ListEndedSince(ctx context.Context, since time.Time) ([]models.InterviewSession, error) {
	filter := bson.M{
		"endedAt":  bson.M{"$gte": since},
		"feedback": bson.M{"$exists": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "endedAt", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *InterviewRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.InterviewSession, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.InterviewSession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
