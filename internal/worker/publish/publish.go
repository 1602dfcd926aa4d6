// Package publish promotes scheduled news posts once their publish time has passed.
package publish

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor abstracts ExecContext. Satisfied by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Recorder counts published posts.
type Recorder interface {
	RecordNewsPublished(count int)
}

// publishQuery is a single statement, so a run is atomic and safe to repeat.
const publishQuery = `UPDATE news SET status = 'PUBLISHED', published_at = now()
	WHERE status = 'SCHEDULED' AND publish_at <= now()`

// Job publishes due news posts.
type Job struct {
	db       Executor
	logger   *slog.Logger
	recorder Recorder
}

// NewJob creates a Job.
func NewJob(db Executor, logger *slog.Logger, recorder Recorder) *Job {
	return &Job{
		db:       db,
		logger:   logger,
		recorder: recorder,
	}
}

// Run publishes every scheduled post whose publish_at is not in the future
// and returns how many were published.
func (j *Job) Run(ctx context.Context) (int64, error) {
	start := time.Now()

	result, err := j.db.ExecContext(ctx, publishQuery)
	if err != nil {
		j.logger.Error("news publish job failed",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to publish scheduled news: %w", err)
	}

	published, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("failed to read published count",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to read published count: %w", err)
	}

	j.recorder.RecordNewsPublished(int(published))
	j.logger.Info("news publish job completed",
		slog.Int64("published_count", published),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return published, nil
}

// Start runs the job once immediately and then every interval until ctx is done.
// A failed run is logged and retried on the next tick.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.logger.Info("news publisher started", slog.Duration("interval", interval))

	j.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			j.logger.Info("news publisher stopped")
			return
		case <-ticker.C:
			j.Run(ctx)
		}
	}
}
