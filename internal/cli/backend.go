package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"jobprep/api/internal/config"
	"jobprep/api/internal/repositories"
	mongorepo "jobprep/api/internal/repositories/mongo"
)

// OpenStores connects to postgres and mongo the same way the server does.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	db, err := repositories.ConnectWithRetry(repositories.OpenPostgres, cfg.PostgresDSN, cfg.DBConnectTimeout, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	client, err := mongorepo.NewClient(ctx, cfg.MongoURI, cfg.MongoDBName, cfg.DBConnectTimeout)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	database, err := client.DB()
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Backend{
		Users:      &repositories.UserRepository{DB: db},
		Interviews: mongorepo.NewInterviewRepo(database),
		EnsureIndexes: func(ctx context.Context) error {
			return mongorepo.EnsureIndexes(ctx, database)
		},
		Close: func(ctx context.Context) error {
			return errors.Join(client.Disconnect(ctx), sqlDB.Close())
		},
	}, nil
}
