package cmd

import (
	"context"
	"time"

	"sport-booking/internal/data/repository"
	"sport-booking/pkg/metrics"

	"go.uber.org/zap"
)

// SessionCleanup deletes expired and revoked sessions every interval until ctx is done.
func SessionCleanup(ctx context.Context, sessions repository.SessionRepository, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
				continue
			}
			metrics.RecordSessionsCleaned(n)
			if n > 0 {
				logger.Info("Expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
