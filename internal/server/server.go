// Package server exposes the analysis front-end and the streaming API
// route over net/http.
package server

import (
	"context"
	"crypto/rand"
	"net/http"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/Afolstee/politiscope/internal/llm"
	"github.com/Afolstee/politiscope/pkg/discourse/config"
	"github.com/Afolstee/politiscope/pkg/discourse/store"
)

// completionStreamer is the slice of the LLM client the server needs.
type completionStreamer interface {
	ChatStream(ctx context.Context, system, user string, fn func(delta string) error) error
}

// Server holds the route handlers and their dependencies.
type Server struct {
	cfg   config.Config
	store store.Store

	// newStreamer builds the upstream client for one request; swapped
	// out in tests.
	newStreamer func(apiKey string) completionStreamer

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New constructs a Server over the given store.
func New(cfg config.Config, st store.Store) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	s.newStreamer = func(apiKey string) completionStreamer {
		return &llm.Client{
			BaseURL:     cfg.LLM.BaseURL,
			APIKey:      apiKey,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			HTTPClient:  &http.Client{Timeout: cfg.LLM.Timeout()},
		}
	}
	return s
}

// Handler returns the route mux wrapped in the shared middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/extract", s.handleExtract)
	mux.HandleFunc("/api/feedback", s.handleFeedback)
	mux.HandleFunc("/api/export/", s.handleExport)
	mux.HandleFunc("/health", s.handleHealth)
	return corsMiddleware(requestLogger(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logrus.Info("shutting down")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// newSessionID mints a ULID; the entropy source is not concurrency safe.
func (s *Server) newSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}
