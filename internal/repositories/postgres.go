package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenFunc opens a gorm connection for dsn.
type OpenFunc func(dsn string) (*gorm.DB, error)

const retryInterval = 200 * time.Millisecond

// OpenPostgres opens dsn with duplicate-key errors translated to gorm.ErrDuplicatedKey.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps opening and pinging the database until it answers or
// timeout elapses. Postgres often starts after the API in compose setups.
func ConnectWithRetry(open OpenFunc, dsn string, timeout time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error

	for attempt := 1; ; attempt++ {
		db, err := open(dsn)
		if err == nil {
			err = ping(db)
			if err == nil {
				if attempt > 1 {
					logger.Info("Connected to postgres", zap.Int("attempts", attempt))
				}
				return db, nil
			}
		}
		lastErr = err

		if time.Now().Add(retryInterval).After(deadline) {
			break
		}
		logger.Warn("Postgres not ready, retrying", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(retryInterval)
	}

	if lastErr == nil {
		lastErr = errors.New("no connection attempt made")
	}
	return nil, fmt.Errorf("failed to connect to postgres within %s: %w", timeout, lastErr)
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
