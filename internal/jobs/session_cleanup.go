package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"careerquiz/backend/internal/utils"
)

// StaleSessionStore deletes unfinished sessions created before cutoff.
type StaleSessionStore interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupConfig contains configuration for the cleanup job
type CleanupConfig struct {
	Schedule string        // Cron expression, e.g. "@every 1h" or "0 3 * * *"
	MaxAge   time.Duration // In-progress sessions older than this are removed
	Timeout  time.Duration // Upper bound for a single run
}

// SessionCleanupJob removes quizzes that were generated but never submitted.
type SessionCleanupJob struct {
	store  StaleSessionStore
	config CleanupConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

func NewSessionCleanupJob(store StaleSessionStore, config CleanupConfig, logger *zap.Logger) *SessionCleanupJob {
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &SessionCleanupJob{
		store:  store,
		config: config,
		cron:   cron.New(),
		logger: utils.LoggerOrDefault(logger),
		now:    time.Now,
	}
}

// Start schedules the job. Runs that overlap a still-running one are skipped.
func (j *SessionCleanupJob) Start() error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.config.Timeout)
		defer cancel()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("Session cleanup failed", zap.Error(err))
		}
	}))

	if _, err := j.cron.AddJob(j.config.Schedule, wrapped); err != nil {
		return fmt.Errorf("failed to schedule session cleanup: %w", err)
	}

	j.cron.Start()
	j.logger.Info("Session cleanup started",
		zap.String("schedule", j.config.Schedule),
		zap.Duration("max_age", j.config.MaxAge))
	return nil
}

// Stop stops the scheduler and waits for a running cleanup to finish.
func (j *SessionCleanupJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
		j.logger.Info("Session cleanup stopped")
	}
}

// RunOnce performs a single cleanup pass and returns the number of deleted
// sessions.
func (j *SessionCleanupJob) RunOnce(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.config.MaxAge)

	deleted, err := j.store.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}

	j.logger.Info("Stale sessions removed",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff))
	return deleted, nil
}
