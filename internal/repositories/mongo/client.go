package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	jobsCollection         = "jobs"
	applicationsCollection = "applications"
	interviewsCollection   = "interviews"
)

type Client struct {
	raw    *mongo.Client
	dbName string
}

// NewClient connects to uri and pings the primary within timeout.
func NewClient(ctx context.Context, uri, dbName string, timeout time.Duration) (*Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is empty")
	}
	if dbName == "" {
		dbName = "jobprep"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}
	return &Client{raw: c, dbName: dbName}, nil
}

func (c *Client) DB() (*mongo.Database, error) {
	if c == nil || c.raw == nil {
		return nil, errors.New("mongo client not initialized")
	}
	return c.raw.Database(c.dbName), nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("mongo client not initialized")
	}
	return c.raw.Ping(ctx, readpref.Primary())
}

func (c *Client) Disconnect(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		jobsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "postedAt", Value: -1}}},
			{Keys: bson.D{{Key: "recruiterId", Value: 1}}},
		},
		applicationsCollection: {
			{
				Keys:    bson.D{{Key: "candidateId", Value: 1}, {Key: "jobId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("candidate_job_unique"),
			},
			{Keys: bson.D{{Key: "jobId", Value: 1}}},
		},
		interviewsCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "endedAt", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
