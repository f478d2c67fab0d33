package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cticrawl/internal/crawler"
	"cticrawl/internal/domain"
)

// CrawlRequest is the payload for submitting a one-off crawl run. Depth and
// workers fall back to the configured defaults when omitted.
type CrawlRequest struct {
	URLs    []string `json:"urls"`
	Depth   *int     `json:"depth,omitempty"`
	Workers *int     `json:"workers,omitempty"`
}

// StatusResponse reports the runner state and the stats of the last run.
type StatusResponse struct {
	Running bool             `json:"running"`
	LastRun *domain.RunStats `json:"last_run,omitempty"`
}

func (s *Server) handleCrawlRequest(w http.ResponseWriter, r *http.Request) {
	var req CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.URLs) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "URLs list cannot be empty")
		return
	}
	for _, u := range req.URLs {
		if _, err := url.ParseRequestURI(u); err != nil {
			s.respondWithError(w, http.StatusBadRequest, "Invalid URL in list: "+u)
			return
		}
	}

	job := domain.CrawlJob{
		Seeds:     req.URLs,
		MaxDepth:  s.config.MaxDepth,
		Workers:   s.config.CrawlWorkers,
		OutputDir: s.config.OutputDir,
	}
	if req.Depth != nil {
		job.MaxDepth = *req.Depth
	}
	if req.Workers != nil {
		job.Workers = *req.Workers
	}

	if err := s.runner.Start(job); err != nil {
		if errors.Is(err, crawler.ErrRunInProgress) {
			s.respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondWithJSON(w, http.StatusAccepted, map[string]string{"message": "crawl accepted"})
}

func (s *Server) handleStatusRequest(w http.ResponseWriter, r *http.Request) {
	running, last := s.runner.Status()
	s.respondWithJSON(w, http.StatusOK, StatusResponse{Running: running, LastRun: last})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	healthStatus := map[string]string{"output_dir": "healthy"}

	if err := probeOutputDir(s.config.OutputDir); err != nil {
		healthStatus["output_dir"] = "unhealthy"
		s.logger.Error("health check failed for output directory", zap.Error(err))
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}

	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// probeOutputDir verifies the archive directory exists and is writable.
func probeOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(filepath.Clean(name))
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
