package store

import (
	"context"
	"time"
)

// Session statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store persists analysis run metadata and user feedback. Analysis text
// itself is never stored.
type Store interface {
	Close() error

	// Sessions
	UpsertSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, bool, error)

	// Feedback
	SaveFeedback(ctx context.Context, f Feedback) error
	ListFeedback(ctx context.Context, limit int) ([]Feedback, error)
}

// Session records one analysis run: timing, size and outcome, no content.
type Session struct {
	ID          string
	WordCount   int
	Framework   string
	Status      string
	CreatedAt   time.Time
	CompletedAt time.Time
}

// Feedback is a user rating for a finished run.
type Feedback struct {
	ID        int64
	SessionID string
	Rating    int
	Comments  string
	Helpful   bool
	CreatedAt time.Time
}
