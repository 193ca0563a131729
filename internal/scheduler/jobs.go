package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CacheWarmer is implemented by the catalog cache.
type CacheWarmer interface {
	Warm(ctx context.Context) error
}

// PreviewSweeper is implemented by the wizard service.
type PreviewSweeper interface {
	SweepPreviews(ctx context.Context) (int, error)
}

// CacheWarmJob reloads every catalog dataset into Redis.
func CacheWarmJob(spec string, warmer CacheWarmer) Job {
	return Job{
		Name:    "catalog-cache-warm",
		Spec:    spec,
		Timeout: time.Minute,
		Run:     warmer.Warm,
	}
}

// PreviewSweepJob releases image previews whose drafts have expired.
func PreviewSweepJob(spec string, sweeper PreviewSweeper, logger *zap.Logger) Job {
	return Job{
		Name:    "preview-sweep",
		Spec:    spec,
		Timeout: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			n, err := sweeper.SweepPreviews(ctx)
			if n > 0 && logger != nil {
				logger.Info("released orphaned previews", zap.Int("count", n))
			}
			return err
		},
	}
}
