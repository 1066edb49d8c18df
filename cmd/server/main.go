package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"jobprep/api/internal/config"
	"jobprep/api/internal/events"
	"jobprep/api/internal/handlers"
	"jobprep/api/internal/interview"
	"jobprep/api/internal/jobs"
	"jobprep/api/internal/llm"
	_ "jobprep/api/internal/llm/gemini"
	_ "jobprep/api/internal/llm/langchain"
	"jobprep/api/internal/metrics"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/prompts"
	"jobprep/api/internal/repositories"
	mongorepo "jobprep/api/internal/repositories/mongo"
	"jobprep/api/internal/routers"
	"jobprep/api/internal/telemetry"
	"jobprep/api/internal/utils"
)

const serviceName = "jobprep-api"

// documentStore is the mongo connection the server needs.
type documentStore interface {
	DB() (*mongo.Database, error)
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

var gormOpen repositories.OpenFunc = repositories.OpenPostgres

var (
	runAutoMigrate = func(ctx context.Context, users *repositories.UserRepository) error { return users.Migrate(ctx) }

	openMongo = func(ctx context.Context, cfg *config.Config) (documentStore, error) {
		return mongorepo.NewClient(ctx, cfg.MongoURI, cfg.MongoDBName, cfg.DBConnectTimeout)
	}

	ensureIndexes   = mongorepo.EnsureIndexes
	newProvider     = llm.NewProvider
	newLogger       = utils.NewLogger
	httpListenServe = func(server *http.Server) error { return server.ListenAndServe() }

	shutdownSignal = func() <-chan os.Signal {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		return ch
	}

	exitFunc   = os.Exit
	logFatalFn = defaultLogFatal
)

func registerRoutes(router *chi.Mux, cfg *config.Config, auth *handlers.AuthHandler, jobHandler *handlers.JobHandler,
	applicationHandler *handlers.ApplicationHandler, interviewHandler *handlers.InterviewHandler, healthHandler *handlers.HealthHandler) {
	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, auth, requireAuth)
	routers.JobRoutes(router, jobHandler, requireAuth)
	routers.ApplicationRoutes(router, applicationHandler, requireAuth)
	routers.InterviewRoutes(router, interviewHandler, requireAuth)
}

func run() error {
	// a missing .env is fine in containers
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("mongo_db", cfg.MongoDBName),
		zap.Bool("events", cfg.RedisAddr != ""),
		zap.Bool("export", cfg.Export.Enabled))
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, signing tokens with the development secret")
	}

	ctx := context.Background()

	tracer, shutdownTracing, err := telemetry.InitTracing(ctx, serviceName, cfg.TracesFile)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	// credential store
	db, err := repositories.ConnectWithRetry(gormOpen, cfg.PostgresDSN, cfg.DBConnectTimeout, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("postgres handle: %w", err)
	}
	defer sqlDB.Close()

	userRepo := &repositories.UserRepository{DB: db}
	if err := runAutoMigrate(ctx, userRepo); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	// job catalog, application ledger and interview store
	store, err := openMongo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Disconnect(disconnectCtx); err != nil {
			logger.Warn("Failed to disconnect from mongo", zap.Error(err))
		}
	}()
	database, err := store.DB()
	if err != nil {
		return err
	}
	if err := ensureIndexes(ctx, database); err != nil {
		return fmt.Errorf("ensure mongo indexes: %w", err)
	}

	jobRepo := mongorepo.NewJobRepo(database)
	applicationRepo := mongorepo.NewApplicationRepo(database)
	interviewRepo := mongorepo.NewInterviewRepo(database)

	readiness := map[string]handlers.PingFunc{
		"postgres": sqlDB.PingContext,
		"mongo":    store.Ping,
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb, logger)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Info("Publishing events to redis", zap.String("addr", cfg.RedisAddr))
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		return fmt.Errorf("initialize prompt manager: %w", err)
	}

	provider, err := newProvider(cfg.Provider)
	if err != nil {
		return fmt.Errorf("initialize AI provider: %w", err)
	}
	provider = llm.Instrument(provider, tracer)

	orchestrator := interview.NewOrchestrator(interviewRepo, provider, promptManager, publisher, logger)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	jobHandler := handlers.NewJobHandler(jobRepo, userRepo, applicationRepo, logger)
	applicationHandler := handlers.NewApplicationHandler(applicationRepo, jobRepo, userRepo, publisher, logger)
	interviewHandler := handlers.NewInterviewHandler(orchestrator, logger)
	healthHandler := handlers.NewHealthHandler(provider, promptManager, cfg, readiness)

	exporterJob := jobs.NewInterviewExporterJob(interviewRepo, &jobs.ExporterConfig{
		Schedule:      cfg.Export.Schedule,
		ExportDir:     cfg.Export.Dir,
		ExportEnabled: cfg.Export.Enabled,
	}, logger)
	if err := exporterJob.Start(); err != nil {
		return err
	}
	defer exporterJob.Stop()

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware(serviceName))

	registerRoutes(router, cfg, authHandler, jobHandler, applicationHandler, interviewHandler, healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // above the 60s request timeout
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("jobprep API starting", zap.String("addr", server.Addr))
		serveErr <- httpListenServe(server)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-shutdownSignal():
	}

	logger.Info("jobprep API shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("jobprep API exited")
	return nil
}

func defaultLogFatal(err error) {
	fmt.Fprintf(os.Stderr, "jobprep API error: %v\n", err)
	exitFunc(1)
}

func main() {
	if err := run(); err != nil {
		logFatalFn(err)
	}
}
