package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Afolstee/politiscope/internal/htmltext"
	"github.com/Afolstee/politiscope/pkg/discourse"
	"github.com/Afolstee/politiscope/pkg/discourse/discourseerr"
	"github.com/Afolstee/politiscope/pkg/discourse/store"
)

type analyzeRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key"`
}

// streamEvent is one SSE data frame sent to the browser.
type streamEvent struct {
	Type      string `json:"type"` // "session", "delta", "done", "error"
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text,omitempty"`
	Stage     string `json:"stage,omitempty"`
	Percent   int    `json:"percent,omitempty"`
	Framework string `json:"framework,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := discourse.Validate(req.Text, s.cfg.Limits.MaxWords); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = s.cfg.LLM.APIKey
	}
	if apiKey == "" {
		writeJSONError(w, http.StatusBadRequest, discourseerr.ErrMissingAPIKey.Error())
		return
	}

	sessionID := s.newSessionID()
	sess := store.Session{
		ID:        sessionID,
		WordCount: discourse.WordCount(req.Text),
		Status:    store.StatusRunning,
		CreatedAt: time.Now(),
	}
	if err := s.store.UpsertSession(r.Context(), sess); err != nil {
		logrus.Errorf("create session: %v", err)
	}

	// Server-Sent Events back to the browser.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sendSSEEvent(w, streamEvent{
		Type:      "session",
		SessionID: sessionID,
		Stage:     discourse.StageConnecting.String(),
		Percent:   discourse.StageConnecting.Percent(),
	})

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.LLM.Timeout())
	defer cancel()

	proc := discourse.NewProcessor()
	client := s.newStreamer(apiKey)

	lastPercent := -1
	err := client.ChatStream(ctx, discourse.SystemMessage, discourse.BuildPrompt(req.Text), func(delta string) error {
		ev := proc.Feed(delta)
		if ev.Text == "" && ev.Percent == lastPercent {
			return nil
		}
		lastPercent = ev.Percent
		sendSSEEvent(w, streamEvent{
			Type:    "delta",
			Text:    ev.Text,
			Stage:   ev.StageName,
			Percent: ev.Percent,
		})
		return nil
	})
	if err != nil {
		logrus.Errorf("analysis stream: %v", err)
		sendSSEEvent(w, streamEvent{Type: "error", Message: fmt.Sprintf("Analysis failed: %v", err)})
		s.finishSession(sess, proc, store.StatusFailed)
		return
	}

	fin := proc.Finish()
	sendSSEEvent(w, streamEvent{
		Type:      "done",
		Text:      fin.Text,
		Stage:     fin.StageName,
		Percent:   fin.Percent,
		Framework: frameworkLabel(proc.Framework()),
	})
	s.finishSession(sess, proc, store.StatusCompleted)
}

// finishSession records the run outcome; the request context may already
// be gone, so a short background context is used.
func (s *Server) finishSession(sess store.Session, proc *discourse.Processor, status string) {
	sess.Status = status
	sess.Framework = frameworkLabel(proc.Framework())
	sess.CompletedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.UpsertSession(ctx, sess); err != nil {
		logrus.Errorf("finish session: %v", err)
	}
}

func frameworkLabel(f discourse.Framework) string {
	if f == discourse.FrameworkUnknown {
		return ""
	}
	return f.String()
}

type extractRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text := req.Text
	if htmltext.IsHTML(text) {
		text = htmltext.Extract(text)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"text":  text,
		"stats": discourse.TextStats(text),
	})
}

type feedbackRequest struct {
	SessionID string `json:"session_id"`
	Rating    int    `json:"rating"`
	Comments  string `json:"comments"`
	Helpful   bool   `json:"helpful"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJSONError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	err := s.store.SaveFeedback(r.Context(), store.Feedback{
		SessionID: req.SessionID,
		Rating:    req.Rating,
		Comments:  req.Comments,
		Helpful:   req.Helpful,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logrus.Errorf("save feedback: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "could not save feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type exportRequest struct {
	Title    string `json:"title"`
	Analysis string `json:"analysis"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}
	format := strings.TrimPrefix(r.URL.Path, "/api/export/")

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Analysis) == "" {
		writeJSONError(w, http.StatusBadRequest, "no analysis to export")
		return
	}
	title := req.Title
	if title == "" {
		title = "discourse-analysis"
	}

	switch format {
	case "json":
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(title)+".json"))
		writeJSON(w, http.StatusOK, map[string]string{
			"title":        title,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"analysis":     req.Analysis,
		})
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(title)+".txt"))
		fmt.Fprintf(w, "Critical Discourse Analysis: %s\nGenerated: %s\n\n%s\n",
			title, time.Now().UTC().Format(time.RFC3339), req.Analysis)
	default:
		writeJSONError(w, http.StatusBadRequest, "unsupported export format")
	}
}

// exportFilename makes a portable file name from a user-supplied title.
func exportFilename(title string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, title)
	if mapped == "" {
		mapped = "discourse-analysis"
	}
	return mapped
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SSE helper functions
func sendSSEEvent(w http.ResponseWriter, event streamEvent) {
	data, _ := json.Marshal(event)
	fmt.Fprintf(w, "data: %s\n\n", data)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("write response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
