package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"jobprep/api/internal/models"
)

func applicationDoc(id, candidateID, jobID, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "candidateId", Value: candidateID},
		{Key: "jobId", Value: jobID},
		{Key: "status", Value: status},
	}
}

func TestApplicationRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create fills defaults", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		app, err := repo.Create(context.Background(), &models.Application{CandidateID: "1", JobID: "j1"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, app.ID)
		assert.Equal(mt, models.ApplicationApplied, app.Status)
		assert.False(mt, app.AppliedAt.IsZero())
	})

	// Two concurrent applies can both pass the handler pre-check; the unique
	// index rejects the second insert.
	mt.Run("duplicate key maps to conflict", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: jobprep.applications index: candidate_job_unique",
		}))

		_, err := repo.Create(context.Background(), &models.Application{CandidateID: "1", JobID: "j1"})
		assert.ErrorIs(mt, err, models.ErrConflict)
	})

	mt.Run("find by candidate and job", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".applications", mtest.FirstBatch,
			applicationDoc("a1", "1", "j1", models.ApplicationApplied)))

		app, err := repo.FindByCandidateAndJob(context.Background(), "1", "j1")
		require.NoError(mt, err)
		assert.Equal(mt, "a1", app.ID)
	})

	mt.Run("find by candidate and job missing", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".applications", mtest.FirstBatch))

		_, err := repo.FindByCandidateAndJob(context.Background(), "1", "j1")
		assert.ErrorIs(mt, err, ErrApplicationNotFound)
	})

	mt.Run("list by candidate", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".applications", mtest.FirstBatch,
			applicationDoc("a1", "1", "j1", models.ApplicationApplied),
			applicationDoc("a2", "1", "j2", models.ApplicationRejected)))

		apps, err := repo.ListByCandidate(context.Background(), "1")
		require.NoError(mt, err)
		require.Len(mt, apps, 2)
		assert.Equal(mt, models.ApplicationRejected, apps[1].Status)
	})

	mt.Run("list by job", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".applications", mtest.FirstBatch,
			applicationDoc("a1", "1", "j1", models.ApplicationApplied)))

		apps, err := repo.ListByJob(context.Background(), "j1")
		require.NoError(mt, err)
		assert.Len(mt, apps, 1)
	})

	mt.Run("list by jobs empty skips query", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		apps, err := repo.ListByJobs(context.Background(), nil)
		require.NoError(mt, err)
		assert.NotNil(mt, apps)
		assert.Empty(mt, apps)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: applicationDoc("a1", "1", "j1", models.ApplicationAccepted)},
		})

		app, err := repo.UpdateStatus(context.Background(), "a1", models.ApplicationAccepted)
		require.NoError(mt, err)
		assert.Equal(mt, models.ApplicationAccepted, app.Status)
	})

	mt.Run("update status unknown", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.UpdateStatus(context.Background(), "missing", models.ApplicationAccepted)
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete by job", func(mt *mtest.T) {
		repo := NewApplicationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		n, err := repo.DeleteByJob(context.Background(), "j1")
		require.NoError(mt, err)
		assert.EqualValues(mt, 3, n)
	})
}
