package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionSweeper is implemented by customer.Sessions.
type SessionSweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

type SessionSweepJob struct {
	sessions SessionSweeper
	maxIdle  time.Duration
	logger   *slog.Logger
}

func NewSessionSweepJob(sessions SessionSweeper, maxIdle time.Duration, logger *slog.Logger) *SessionSweepJob {
	if sessions == nil || logger == nil {
		panic("SessionSweepJob dependencies cannot be nil")
	}
	return &SessionSweepJob{
		sessions: sessions,
		maxIdle:  maxIdle,
		logger:   logger.With("job", "SessionSweep"),
	}
}

// Run closes list sessions that have been idle longer than the configured limit.
func (j *SessionSweepJob) Run(ctx context.Context) error {
	if j.maxIdle <= 0 {
		return fmt.Errorf("cannot run job, max idle must be positive, got %s", j.maxIdle)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cannot run job: %w", err)
	}

	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting list session sweep.", slog.Int("open", j.sessions.Len()))

	closed := j.sessions.Sweep(j.maxIdle)

	j.logger.InfoContext(ctx, "List session sweep finished.",
		slog.Int("closed", closed),
		slog.Int("remaining", j.sessions.Len()),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
