// Package server exposes scrape runs over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-fixture-summary/internal/models"
	"go-fixture-summary/internal/runner"
	"go-fixture-summary/internal/scraper"
)

// RunFunc performs one scrape run.
type RunFunc func(ctx context.Context) (*runner.Report, error)

// LatestFunc loads the last stored summary when none is held in memory.
type LatestFunc func(ctx context.Context) (*models.MatchSummary, error)

type runState struct {
	ID         string     `json:"id"`
	RunID      string     `json:"runId,omitempty"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type Server struct {
	run     RunFunc
	latest  LatestFunc
	timeout time.Duration

	mu      sync.Mutex
	running bool
	last    *runState
	summary *models.MatchSummary
	wg      sync.WaitGroup
}

// New builds a server. latest may be nil.
func New(run RunFunc, latest LatestFunc, timeout time.Duration) *Server {
	return &Server{run: run, latest: latest, timeout: timeout}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.health)
	r.GET("/summary", s.getSummary)
	r.POST("/runs", s.startRun)
	r.GET("/runs/last", s.lastRun)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Fixture summary API is running!",
		"status":  "healthy",
	})
}

func (s *Server) getSummary(c *gin.Context) {
	s.mu.Lock()
	summary := s.summary
	s.mu.Unlock()

	if summary == nil && s.latest != nil {
		stored, err := s.latest(c.Request.Context())
		if err != nil {
			log.Printf("⚠️ Could not load latest summary: %v", err)
		} else {
			summary = stored
		}
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary yet"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) startRun(c *gin.Context) {
	s.mu.Lock()
	if s.running {
		state := *s.last
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress", "run": state})
		return
	}
	state := &runState{ID: uuid.NewString(), Status: "running", StartedAt: time.Now()}
	s.running = true
	s.last = state
	accepted := *state
	s.wg.Add(1)
	s.mu.Unlock()

	go s.execute(state)

	c.JSON(http.StatusAccepted, accepted)
}

func (s *Server) execute(state *runState) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	state.FinishedAt = &now
	s.running = false
	if report != nil && report.Result != nil {
		state.RunID = report.RunID
	}

	var noFixtures *scraper.NoFixturesError
	switch {
	case errors.As(err, &noFixtures):
		state.Status = "no-fixtures"
	case err != nil:
		state.Status = "failed"
		state.Error = err.Error()
	default:
		state.Status = "done"
		s.summary = report.Summary
	}
}

func (s *Server) lastRun(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run yet"})
		return
	}
	c.JSON(http.StatusOK, *s.last)
}

// Wait blocks until the in-flight run, if any, finishes.
func (s *Server) Wait() {
	s.wg.Wait()
}
