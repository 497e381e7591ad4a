// Package backup runs the periodic export-and-publish pipeline.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/infrastructure/metrics"
)

// FileName is the fixed archive name. Every run overwrites the same
// local file and Drive file, so storage use stays constant.
const FileName = "store_management_backup.json"

// Trigger identifies what started a backup run.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// Exporter assembles the full-ledger snapshot.
type Exporter interface {
	Export(ctx context.Context) (*domain.Snapshot, error)
}

// Publisher uploads the archive to remote storage.
type Publisher interface {
	Publish(ctx context.Context, name string, payload []byte) error
}

// RunStatus describes one backup run.
type RunStatus struct {
	ID         string    `json:"id"`
	Trigger    Trigger   `json:"trigger"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	FilePath   string    `json:"filePath"`
	Uploaded   bool      `json:"uploaded"`
	Error      string    `json:"error,omitempty"`
}

// Config for Scheduler.
type Config struct {
	Exporter  Exporter
	Publisher Publisher // nil runs local-only
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
	Dir       string        // local archive directory
	Interval  time.Duration // schedule interval
}

// Scheduler writes periodic ledger backups to local disk and, when a
// publisher is configured, Google Drive.
type Scheduler struct {
	exporter  Exporter
	publisher Publisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	dir       string
	interval  time.Duration

	mu      sync.Mutex
	lastRun *RunStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Dir == "" {
		cfg.Dir = "backups"
	}
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}

	return &Scheduler{
		exporter:  cfg.Exporter,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		dir:       cfg.Dir,
		interval:  cfg.Interval,
	}
}

// Start begins the backup worker. It runs continuously until the context
// is cancelled. Failed scheduled runs are logged and the schedule keeps
// going.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Str("dir", s.dir).
		Bool("drive", s.publisher != nil).
		Msg("backup scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Back up immediately on start
	if _, err := s.Run(ctx, TriggerScheduled); err != nil {
		s.logger.Error().Err(err).Msg("backup on start failed")
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("backup scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Run(ctx, TriggerScheduled); err != nil {
				s.logger.Error().Err(err).Msg("scheduled backup failed")
			}
		}
	}
}

// Run executes one backup: export, local write, then upload when a
// publisher is configured. The returned status is also kept for LastRun.
func (s *Scheduler) Run(ctx context.Context, trigger Trigger) (*RunStatus, error) {
	status := &RunStatus{
		ID:        ulid.Make().String(),
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
	}

	logger := s.logger.With().
		Str("run_id", status.ID).
		Str("trigger", string(trigger)).
		Logger()

	logger.Info().Msg("backup run started")

	err := s.run(ctx, status)

	status.FinishedAt = time.Now().UTC()
	if err != nil {
		status.Error = err.Error()
	}

	s.observe(status)

	s.mu.Lock()
	s.lastRun = status
	s.mu.Unlock()

	if err != nil {
		return status, err
	}

	logger.Info().
		Str("file", status.FilePath).
		Bool("uploaded", status.Uploaded).
		Dur("took", status.FinishedAt.Sub(status.StartedAt)).
		Msg("backup run completed")

	return status, nil
}

func (s *Scheduler) run(ctx context.Context, status *RunStatus) error {
	snapshot, err := s.exporter.Export(ctx)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path, err := s.writeLocal(payload)
	if err != nil {
		return fmt.Errorf("write local archive: %w", err)
	}

	status.FilePath = path

	if s.metrics != nil {
		s.metrics.BackupSizeBytes.Set(float64(len(payload)))
	}

	if s.publisher == nil {
		return nil
	}

	if err := s.publisher.Publish(ctx, FileName, payload); err != nil {
		if s.metrics != nil {
			s.metrics.DriveUploads.WithLabelValues("error").Inc()
		}

		return fmt.Errorf("publish archive: %w", err)
	}

	if s.metrics != nil {
		s.metrics.DriveUploads.WithLabelValues("success").Inc()
	}

	status.Uploaded = true

	return nil
}

// writeLocal writes the archive through a temp file and rename, so a
// crash mid-write never leaves a truncated archive behind.
func (s *Scheduler) writeLocal(payload []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, FileName)

	tmp, err := os.CreateTemp(s.dir, FileName+".tmp-*")
	if err != nil {
		return "", err
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return path, nil
}

func (s *Scheduler) observe(status *RunStatus) {
	if s.metrics == nil {
		return
	}

	result := "success"
	if status.Error != "" {
		result = "error"
	}

	s.metrics.BackupRuns.WithLabelValues(string(status.Trigger), result).Inc()
	s.metrics.BackupDuration.Observe(status.FinishedAt.Sub(status.StartedAt).Seconds())

	if status.Error == "" {
		s.metrics.LastBackupSuccess.Set(float64(status.FinishedAt.Unix()))
	}
}

// LastRun returns the most recent run status, or nil before any run.
func (s *Scheduler) LastRun() *RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastRun
}
