// Package memstore provides an in-memory Store for tests and for running
// the server without a database file.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Afolstee/politiscope/pkg/discourse/store"
)

type memStore struct {
	mu       sync.RWMutex
	sessions map[string]store.Session
	feedback []store.Feedback
	nextID   int64
}

// New creates an empty in-memory store.
func New() store.Store {
	return &memStore{
		sessions: make(map[string]store.Session),
		nextID:   1,
	}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) UpsertSession(_ context.Context, s store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) GetSession(_ context.Context, id string) (store.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok, nil
}

func (m *memStore) SaveFeedback(_ context.Context, f store.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.nextID
	m.nextID++
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	m.feedback = append(m.feedback, f)
	return nil
}

func (m *memStore) ListFeedback(_ context.Context, limit int) ([]store.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	var result []store.Feedback
	for i := len(m.feedback) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.feedback[i])
	}
	return result, nil
}
