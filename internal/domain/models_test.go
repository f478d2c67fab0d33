package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cticrawl/internal/domain"
)

func TestCrawlJobValidate(t *testing.T) {
	valid := domain.CrawlJob{
		Seeds:     []string{"https://example.com/"},
		MaxDepth:  0,
		Workers:   1,
		OutputDir: "./data",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*domain.CrawlJob)
	}{
		{"no seeds", func(j *domain.CrawlJob) { j.Seeds = nil }},
		{"negative depth", func(j *domain.CrawlJob) { j.MaxDepth = -1 }},
		{"zero workers", func(j *domain.CrawlJob) { j.Workers = 0 }},
		{"missing output dir", func(j *domain.CrawlJob) { j.OutputDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := valid
			tt.mutate(&job)
			assert.Error(t, job.Validate())
		})
	}
}

func TestFetchResultOK(t *testing.T) {
	ok := domain.FetchResult{URL: "https://example.com/", Body: "<html></html>", StatusCode: 200}
	assert.True(t, ok.OK())

	failed := domain.FetchResult{URL: "https://example.com/", Reason: domain.FailTimeout}
	assert.False(t, failed.OK())
}

func TestRunStatsDuration(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	stats := domain.RunStats{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, stats.Duration())
}
