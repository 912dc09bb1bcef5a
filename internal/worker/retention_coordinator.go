// Package worker hosts the background loops the server runs alongside the
// HTTP listener.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// PrunableLog defines the operations required for feedback retention.
// Implemented by engine.FeedbackLog.
type PrunableLog interface {
	Prune() int
	Len() int
}

// RetentionCoordinator periodically prunes aged feedback entries so the
// volatile log cannot grow without bound.
type RetentionCoordinator struct {
	log      PrunableLog
	interval time.Duration
}

// NewRetentionCoordinator creates a coordinator over the given log.
func NewRetentionCoordinator(log PrunableLog, interval time.Duration) *RetentionCoordinator {
	return &RetentionCoordinator{
		log:      log,
		interval: interval,
	}
}

// Run starts the retention loop. It blocks until ctx is cancelled.
//
// The first prune happens after one full interval rather than at startup:
// a fresh process has nothing to prune, and retention intervals are long
// enough that the delay does not matter.
func (c *RetentionCoordinator) Run(ctx context.Context) {
	slog.Info("retention coordinator started",
		"component", "worker",
		"worker", "retention-coordinator",
		"interval", c.interval.String(),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention coordinator stopped",
				"component", "worker",
				"worker", "retention-coordinator",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			c.pruneOnce()
		}
	}
}

// pruneOnce runs a single retention pass.
func (c *RetentionCoordinator) pruneOnce() {
	start := time.Now()
	removed := c.log.Prune()

	if removed > 0 {
		slog.Info("retention cycle completed",
			"component", "worker",
			"worker", "retention-coordinator",
			"entries_removed", removed,
			"entries_remaining", c.log.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
