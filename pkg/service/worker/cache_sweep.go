package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
)

// Pruner drops expired entries and reports how many were removed
type Pruner interface {
	Prune() int
}

// CacheSweepWorker periodically removes expired entries from the lookup cache.
// Entries without a max age are never removed.
type CacheSweepWorker struct {
	cache    Pruner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewCacheSweepWorker creates a new worker for pruning the cache
func NewCacheSweepWorker(cache Pruner, interval time.Duration) *CacheSweepWorker {
	return &CacheSweepWorker{
		cache:    cache,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. It does not block.
func (w *CacheSweepWorker) Start(ctx context.Context) error {
	if w.cache == nil {
		return goerr.New("cache is required")
	}
	if w.interval <= 0 {
		return goerr.New("sweep interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Cache sweep worker starting", "interval", w.interval.String())
	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *CacheSweepWorker) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Cache sweep worker stopping")
		close(w.stopCh)
	})
	<-w.doneCh
}

func (w *CacheSweepWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep()

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Cache sweep worker context cancelled")
			return
		}
	}
}

func (w *CacheSweepWorker) sweep() {
	start := time.Now()
	removed := w.cache.Prune()
	logging.Default().Debug("Cache sweep completed",
		"removed", removed,
		"duration", time.Since(start).String())
}
