// Package crawler owns the crawl frontier: the visited set, the per-depth URL
// queue, and the worker pool that drains each level.
package crawler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cticrawl/internal/classifier"
	"cticrawl/internal/domain"
	"cticrawl/internal/extractor"
	"cticrawl/internal/monitoring"
)

// DefaultLevelPause is the politeness delay observed between depth levels,
// independent of level size.
const DefaultLevelPause = time.Second

// Fetcher retrieves a single URL. Satisfied by *fetcher.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) domain.FetchResult
}

// Archiver persists one report page. Satisfied by *archive.Archiver.
type Archiver interface {
	Save(url, body string) (*domain.ArchivedReport, error)
}

// Engine runs depth-bounded breadth-first crawls. Each level is fully
// materialized and processed to completion before the next is computed, which
// bounds memory and makes cancellation between levels safe. One Engine may be
// reused across runs: all per-run state lives inside Run.
type Engine struct {
	fetcher    Fetcher
	archiver   Archiver
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	levelPause time.Duration
}

func NewEngine(f Fetcher, a Archiver, m *monitoring.Metrics, l *zap.Logger, levelPause time.Duration) *Engine {
	if levelPause <= 0 {
		levelPause = DefaultLevelPause
	}
	return &Engine{
		fetcher:    f,
		archiver:   a,
		metrics:    m,
		logger:     l,
		levelPause: levelPause,
	}
}

// unitResult is the explicit outcome of processing one URL, returned to the
// level aggregator. A failure in one unit never affects any other unit.
type unitResult struct {
	url      string
	links    []string
	failed   bool
	archived bool
}

// Run executes one crawl to completion or until ctx is cancelled. The run
// terminates when the computed next frontier is empty or depth exceeds
// job.MaxDepth, whichever comes first. On cancellation the stats collected so
// far are returned along with the context error.
func (e *Engine) Run(ctx context.Context, job domain.CrawlJob) (*domain.RunStats, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	e.logger.Info("starting crawl",
		zap.Int("seeds", len(job.Seeds)),
		zap.Int("max_depth", job.MaxDepth),
		zap.Int("workers", job.Workers))

	visited := NewVisitedSet()
	stats := &domain.RunStats{Seeds: len(job.Seeds), StartedAt: time.Now()}
	frontier := nextFrontier(job.Seeds, visited)

	for depth := 0; depth <= job.MaxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return e.finish(stats, visited), err
		}

		// Mark the whole batch visited before dispatch so a URL rediscovered
		// at a later level can never be processed twice.
		batch := make([]string, 0, len(frontier))
		for _, u := range frontier {
			if visited.MarkIfNew(u) {
				batch = append(batch, u)
			}
		}
		if len(batch) == 0 {
			break
		}

		e.metrics.FrontierSize.Set(float64(len(batch)))
		e.logger.Info("processing level",
			zap.Int("depth", depth),
			zap.Int("urls", len(batch)))

		var discovered []string
		for _, r := range e.processLevel(ctx, batch, job.Workers) {
			if r.failed {
				stats.FetchFailures++
				continue
			}
			stats.PagesFetched++
			if r.archived {
				stats.ReportsArchived++
			}
			discovered = append(discovered, r.links...)
		}

		frontier = nextFrontier(discovered, visited)
		stats.Levels++

		if depth < job.MaxDepth && len(frontier) > 0 {
			select {
			case <-ctx.Done():
				return e.finish(stats, visited), ctx.Err()
			case <-time.After(e.levelPause):
			}
		}
	}

	stats = e.finish(stats, visited)
	e.logger.Info("crawl completed",
		zap.Int("levels", stats.Levels),
		zap.Int("pages_fetched", stats.PagesFetched),
		zap.Int("fetch_failures", stats.FetchFailures),
		zap.Int("reports_archived", stats.ReportsArchived),
		zap.Duration("duration", stats.Duration()))
	return stats, nil
}

func (e *Engine) finish(stats *domain.RunStats, visited *VisitedSet) *domain.RunStats {
	stats.URLsVisited = visited.Len()
	stats.FinishedAt = time.Now()
	e.metrics.FrontierSize.Set(0)
	e.metrics.CrawlDuration.Observe(stats.Duration().Seconds())
	return stats
}

// processLevel dispatches the batch across a bounded worker pool and blocks
// until every unit has returned. No unit of the next level starts before this
// returns: the next frontier is only known once the level is complete.
func (e *Engine) processLevel(ctx context.Context, batch []string, workers int) []unitResult {
	if workers > len(batch) {
		workers = len(batch)
	}

	jobs := make(chan string)
	results := make(chan unitResult, len(batch))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				results <- e.processURL(ctx, u)
			}
		}()
	}

	for _, u := range batch {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]unitResult, 0, len(batch))
	for r := range results {
		out = append(out, r)
	}
	return out
}

// processURL is one independent unit of work: fetch, archive when the
// classifier matches, extract outbound links. Classification gates archiving
// only; links are followed regardless of the match.
func (e *Engine) processURL(ctx context.Context, rawURL string) unitResult {
	res := e.fetcher.Fetch(ctx, rawURL)
	if !res.OK() {
		e.metrics.IncFetchFailure(string(res.Reason))
		return unitResult{url: rawURL, failed: true}
	}
	e.metrics.PagesFetched.Inc()

	out := unitResult{url: rawURL}
	if match := classifier.Classify(rawURL); match.Report {
		e.logger.Debug("report match",
			zap.String("url", rawURL),
			zap.String("rule", match.Rule))
		if _, err := e.archiver.Save(rawURL, res.Body); err != nil {
			// Per-item failure: links were already fetched, crawl continues.
			e.logger.Error("failed to archive", zap.String("url", rawURL), zap.Error(err))
			e.metrics.IncErrorsTotal("archive_failed")
		} else {
			e.metrics.ReportsArchived.Inc()
			out.archived = true
		}
	}

	out.links = extractor.ExtractLinks(res.Body, rawURL)
	return out
}

// nextFrontier deduplicates discovered and removes everything already
// visited, preserving first-seen order.
func nextFrontier(discovered []string, visited *VisitedSet) []string {
	seen := make(map[string]struct{}, len(discovered))
	var next []string
	for _, u := range discovered {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		if visited.Seen(u) {
			continue
		}
		next = append(next, u)
	}
	return next
}
