package crawler

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"cticrawl/internal/domain"
)

// ErrRunInProgress is returned when a crawl is submitted while another run
// is still active.
var ErrRunInProgress = errors.New("a crawl run is already in progress")

// Runner executes crawls submitted through the control API, one at a time,
// and keeps the stats of the last completed run. Runs are detached from the
// submitting request: they live on ctx, the server's lifecycle context.
type Runner struct {
	engine *Engine
	logger *zap.Logger
	ctx    context.Context

	mu      sync.Mutex
	running bool
	last    *domain.RunStats
}

func NewRunner(ctx context.Context, engine *Engine, logger *zap.Logger) *Runner {
	return &Runner{engine: engine, logger: logger, ctx: ctx}
}

// Start launches job asynchronously. It fails fast with ErrRunInProgress
// when a run is already active and with a validation error for a bad job.
func (r *Runner) Start(job domain.CrawlJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrRunInProgress
	}
	r.running = true
	r.mu.Unlock()

	go func() {
		stats, err := r.engine.Run(r.ctx, job)
		if err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("crawl run failed", zap.Error(err))
		}

		r.mu.Lock()
		r.running = false
		if stats != nil {
			r.last = stats
		}
		r.mu.Unlock()
	}()

	return nil
}

// Status reports whether a run is active and the stats of the last run, if any.
func (r *Runner) Status() (bool, *domain.RunStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == nil {
		return r.running, nil
	}
	stats := *r.last
	return r.running, &stats
}
