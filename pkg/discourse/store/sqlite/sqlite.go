package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Afolstee/politiscope/pkg/discourse/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	word_count INTEGER NOT NULL DEFAULT 0,
	framework TEXT,
	status TEXT NOT NULL,
	created_at TEXT NOT NULL,
	completed_at TEXT
);

CREATE TABLE IF NOT EXISTS feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT,
	rating INTEGER,
	comments TEXT,
	helpful INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertSession inserts or updates a session row.
func (s *sqliteStore) UpsertSession(ctx context.Context, sess store.Session) error {
	completed := ""
	if !sess.CompletedAt.IsZero() {
		completed = sess.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sessions (id, word_count, framework, status, created_at, completed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	word_count=excluded.word_count,
	framework=excluded.framework,
	status=excluded.status,
	completed_at=excluded.completed_at;
`, sess.ID, sess.WordCount, sess.Framework, sess.Status,
		sess.CreatedAt.UTC().Format(time.RFC3339), completed)
	return err
}

// GetSession retrieves a session by ID
func (s *sqliteStore) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	var (
		sess      store.Session
		created   string
		completed sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, word_count, framework, status, created_at, completed_at
FROM sessions
WHERE id = ?;
`, id).Scan(&sess.ID, &sess.WordCount, &sess.Framework, &sess.Status, &created, &completed)
	if err == sql.ErrNoRows {
		return store.Session{}, false, nil
	}
	if err != nil {
		return store.Session{}, false, err
	}

	if parsed, perr := time.Parse(time.RFC3339, created); perr == nil {
		sess.CreatedAt = parsed
	}
	if completed.Valid && completed.String != "" {
		if parsed, perr := time.Parse(time.RFC3339, completed.String); perr == nil {
			sess.CompletedAt = parsed
		}
	}
	return sess, true, nil
}

// SaveFeedback appends a feedback row.
func (s *sqliteStore) SaveFeedback(ctx context.Context, f store.Feedback) error {
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO feedback (session_id, rating, comments, helpful, created_at)
VALUES (?, ?, ?, ?, ?);
`, f.SessionID, f.Rating, f.Comments, boolToInt(f.Helpful), created.UTC().Format(time.RFC3339))
	return err
}

// ListFeedback returns the most recent feedback rows.
func (s *sqliteStore) ListFeedback(ctx context.Context, limit int) ([]store.Feedback, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, rating, comments, helpful, created_at
FROM feedback
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []store.Feedback
	for rows.Next() {
		var (
			f       store.Feedback
			helpful int
			created string
		)
		if err := rows.Scan(&f.ID, &f.SessionID, &f.Rating, &f.Comments, &helpful, &created); err != nil {
			return nil, err
		}
		f.Helpful = helpful != 0
		if parsed, perr := time.Parse(time.RFC3339, created); perr == nil {
			f.CreatedAt = parsed
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
