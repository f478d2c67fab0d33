// Package scheduler repeats full crawl runs on a fixed interval. It is not a
// general-purpose scheduler: one job, run to completion, sleep, repeat.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cticrawl/internal/domain"
)

// CrawlRunner executes one full crawl. Satisfied by *crawler.Engine; every
// call starts from a fresh visited set, so consecutive runs re-crawl pages
// while archived files keep accumulating on disk.
type CrawlRunner interface {
	Run(ctx context.Context, job domain.CrawlJob) (*domain.RunStats, error)
}

// Scheduler loops a crawl job indefinitely. A failed run shortens the delay
// to RetryDelay instead of Interval; only ctx cancellation stops the loop.
type Scheduler struct {
	runner     CrawlRunner
	logger     *zap.Logger
	interval   time.Duration
	retryDelay time.Duration
}

func New(runner CrawlRunner, logger *zap.Logger, interval, retryDelay time.Duration) *Scheduler {
	return &Scheduler{
		runner:     runner,
		logger:     logger,
		interval:   interval,
		retryDelay: retryDelay,
	}
}

// Run blocks until ctx is cancelled. Nothing already on disk is ever deleted
// between runs.
func (s *Scheduler) Run(ctx context.Context, job domain.CrawlJob) {
	s.logger.Info("starting recurring crawler",
		zap.Duration("interval", s.interval))

	for {
		stats, err := s.runOnce(ctx, job)
		if ctx.Err() != nil {
			s.logger.Info("scheduler stopped")
			return
		}

		delay := s.interval
		if err != nil {
			s.logger.Error("crawl run failed, retrying after delay",
				zap.Error(err),
				zap.Duration("retry_delay", s.retryDelay))
			delay = s.retryDelay
		} else {
			s.logger.Info("crawl run completed",
				zap.Int("pages_fetched", stats.PagesFetched),
				zap.Int("reports_archived", stats.ReportsArchived),
				zap.Duration("sleeping", delay))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-time.After(delay):
		}
	}
}

// runOnce isolates a single run so that a crash inside it is contained and
// converted into an error for the retry path.
func (s *Scheduler) runOnce(ctx context.Context, job domain.CrawlJob) (stats *domain.RunStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("crawl run panicked: %v", r)
		}
	}()
	return s.runner.Run(ctx, job)
}
