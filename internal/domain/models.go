package domain

import (
	"errors"
	"time"
)

// CrawlJob is the configuration for a single crawl run. It is immutable for
// the duration of the run; recurring mode reuses the same job across runs.
type CrawlJob struct {
	Seeds     []string
	MaxDepth  int
	Workers   int
	OutputDir string
}

// Validate checks the job bounds before a run is started.
func (j CrawlJob) Validate() error {
	if len(j.Seeds) == 0 {
		return errors.New("crawl job needs at least one seed URL")
	}
	if j.MaxDepth < 0 {
		return errors.New("max depth must be >= 0")
	}
	if j.Workers < 1 {
		return errors.New("worker count must be >= 1")
	}
	if j.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	return nil
}

// FailReason classifies a terminal per-URL fetch failure.
type FailReason string

const (
	FailTimeout    FailReason = "timeout"
	FailConnection FailReason = "connection"
	FailHTTPStatus FailReason = "http_status"
	FailNotHTML    FailReason = "not_html"
)

// FetchResult is the outcome of fetching one URL: either a confirmed
// text/html body or a classified failure. Never both.
type FetchResult struct {
	URL        string
	Body       string
	StatusCode int
	Reason     FailReason
	Err        error
}

// OK reports whether the fetch produced crawlable HTML.
func (r FetchResult) OK() bool {
	return r.Reason == ""
}

// ArchivedReport describes one persisted artifact on disk.
type ArchivedReport struct {
	URL         string
	CrawledAt   time.Time
	Filename    string
	Path        string
	ContentHash string
}

// RunStats aggregates the outcome of one crawl run.
type RunStats struct {
	Seeds           int       `json:"seeds"`
	Levels          int       `json:"levels"`
	URLsVisited     int       `json:"urls_visited"`
	PagesFetched    int       `json:"pages_fetched"`
	FetchFailures   int       `json:"fetch_failures"`
	ReportsArchived int       `json:"reports_archived"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// Duration is the wall-clock time of the run.
func (s RunStats) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
