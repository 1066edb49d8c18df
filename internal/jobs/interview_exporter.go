package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobprep/api/internal/export"
	"jobprep/api/internal/models"
)

// watermarkFile remembers the endedAt of the newest exported session between runs.
const watermarkFile = ".last_export"

// EndedSessionSource lists sessions whose feedback was stored at or after since,
// oldest first.
type EndedSessionSource interface {
	ListEndedSince(ctx context.Context, since time.Time) ([]models.InterviewSession, error)
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string
	ExportEnabled bool
}

// InterviewExporterJob periodically writes ended interviews out as JSONL
// training examples.
type InterviewExporterJob struct {
	source EndedSessionSource
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewInterviewExporterJob(source EndedSessionSource, config *ExporterConfig, logger *zap.Logger) *InterviewExporterJob {
	return &InterviewExporterJob{
		source: source,
		config: config,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start begins the scheduled export job
func (j *InterviewExporterJob) Start() error {
	if !j.config.ExportEnabled {
		j.logger.Info("Interview export is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if _, err := j.RunExport(context.Background()); err != nil {
			j.logger.Error("Interview export job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	j.cron.Start()
	j.logger.Info("Interview exporter started", zap.String("schedule", j.config.Schedule))
	return nil
}

// Stop waits for a running export to finish.
func (j *InterviewExporterJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
		j.logger.Info("Interview exporter stopped")
	}
}

// RunExport exports every session ended since the previous run. It returns the
// written file path, or "" when there was nothing to export.
func (j *InterviewExporterJob) RunExport(ctx context.Context) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	since, err := j.readWatermark()
	if err != nil {
		return "", err
	}

	sessions, err := j.source.ListEndedSince(ctx, since)
	if err != nil {
		return "", fmt.Errorf("failed to list ended interviews: %w", err)
	}
	if len(sessions) == 0 {
		j.logger.Info("No ended interviews to export", zap.Time("since", since))
		return "", nil
	}

	var buf bytes.Buffer
	written, err := export.WriteJSONL(&buf, sessions)
	if err != nil {
		return "", fmt.Errorf("failed to encode training examples: %w", err)
	}

	newest := since
	for _, s := range sessions {
		if s.EndedAt != nil && s.EndedAt.After(newest) {
			newest = *s.EndedAt
		}
	}

	if written == 0 {
		j.logger.Info("Ended interviews carried no feedback, skipping file creation", zap.Int("sessions", len(sessions)))
		return "", j.writeWatermark(newest)
	}

	if err := os.MkdirAll(j.config.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("interview_export_%s.jsonl", j.now().Format("20060102_150405"))
	path := filepath.Join(j.config.ExportDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	if err := j.writeWatermark(newest); err != nil {
		return path, err
	}

	j.logger.Info("Exported interview training examples",
		zap.Int("examples", written),
		zap.String("file", path))
	return path, nil
}

// RunManual runs an export on demand, e.g. from the operator CLI.
func (j *InterviewExporterJob) RunManual(ctx context.Context) (string, error) {
	return j.RunExport(ctx)
}

func (j *InterviewExporterJob) readWatermark() (time.Time, error) {
	data, err := os.ReadFile(filepath.Join(j.config.ExportDir, watermarkFile))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read export watermark: %w", err)
	}
	since, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt export watermark: %w", err)
	}
	// ListEndedSince is inclusive
	return since.Add(time.Nanosecond), nil
}

func (j *InterviewExporterJob) writeWatermark(t time.Time) error {
	if t.IsZero() {
		return nil
	}
	if err := os.MkdirAll(j.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(j.config.ExportDir, watermarkFile)
	if err := os.WriteFile(path, []byte(t.UTC().Format(time.RFC3339Nano)), 0644); err != nil {
		return fmt.Errorf("failed to write export watermark: %w", err)
	}
	return nil
}
