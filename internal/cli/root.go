// Package cli implements jobprepctl, the operator command line for the API's stores.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobprep/api/internal/config"
	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"
)

// UserAdmin is the slice of the credential store the CLI manages.
type UserAdmin interface {
	Migrate(ctx context.Context) error
	SetAdmin(ctx context.Context, email string, admin bool) (*models.User, error)
}

// InterviewSource reads stored interviews.
type InterviewSource interface {
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
	ListEndedSince(ctx context.Context, since time.Time) ([]models.InterviewSession, error)
}

// Backend holds the open stores a command works against.
type Backend struct {
	Users         UserAdmin
	Interviews    InterviewSource
	EnsureIndexes func(ctx context.Context) error
	Close         func(ctx context.Context) error
}

// Opener connects the stores described by cfg.
type Opener func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error)

type app struct {
	open    Opener
	envFile string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the jobprepctl command tree. Stores are opened lazily
// by each subcommand through open.
func NewRootCommand(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "jobprepctl",
		Short:         "Operate the jobprep API's databases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(
		newMigrateCommand(a),
		newGrantAdminCommand(a),
		newExportInterviewsCommand(a),
		newShowInterviewCommand(a),
	)
	return root
}

func (a *app) loadConfig() error {
	if a.envFile != "" {
		// a missing file is fine, the environment may already be set
		_ = godotenv.Load(a.envFile)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// withBackend opens the stores, runs fn and closes them again.
func (a *app) withBackend(ctx context.Context, fn func(*Backend) error) error {
	backend, err := a.open(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if backend.Close == nil {
			return
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			a.logger.Warn("Failed to close stores", zap.Error(err))
		}
	}()
	return fn(backend)
}
