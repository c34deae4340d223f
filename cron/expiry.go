package cron

import (
	"context"
	"time"

	"lawdesk/utils"

	"go.uber.org/zap"
)

// HoldExpirer releases pending bookings whose checkout window has lapsed.
type HoldExpirer interface {
	ExpireStale(ctx context.Context) (int64, error)
}

// RunExpirySweeper sweeps stale holds every interval until ctx is cancelled.
func RunExpirySweeper(ctx context.Context, expirer HoldExpirer, interval time.Duration) {
	logger := utils.GetLogger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Expiry sweeper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			sweepOnce(ctx, expirer)
		}
	}
}

func sweepOnce(ctx context.Context, expirer HoldExpirer) {
	n, err := expirer.ExpireStale(ctx)
	if err != nil {
		utils.GetLogger().Error("Failed to expire stale bookings", zap.Error(err))
		return
	}
	if n > 0 {
		utils.GetLogger().Info("Expired stale bookings", zap.Int64("count", n))
	}
}
