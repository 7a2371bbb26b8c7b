// Package transcript persists conversation transcripts locally.
package transcript

import (
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/pkg/filesystem"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// SQLiteStore persists transcripts in a SQLite database under
// ~/.triagem/transcripts/. When the database cannot be opened it degrades to
// the JSONL file store next to the intended path.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the transcript database at path. An empty
// path uses the default location.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".triagem", "transcripts", "transcripts.db")
	}
	if err := ensureDir(path); err != nil {
		return &SQLiteStore{path: path}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcript_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		timestamp TEXT,
		speaker TEXT,
		text TEXT,
		state TEXT,
		domain TEXT,
		escalated INTEGER
	);`)
	return err
}

// Save inserts one transcript line.
func (s *SQLiteStore) Save(record domain.TranscriptRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO transcript_lines
		(session_id, timestamp, speaker, text, state, domain, escalated)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.SessionID,
		record.Timestamp.Format(time.RFC3339),
		string(record.Speaker),
		record.Text,
		string(record.State),
		record.Domain,
		boolToInt(record.Escalated),
	)
	return err
}

// List returns the most recent transcript lines, newest first.
func (s *SQLiteStore) List(limit int) ([]domain.TranscriptRecord, error) {
	if s.db == nil {
		return s.fallback().List(limit)
	}
	builder := strings.Builder{}
	builder.WriteString(`SELECT session_id, timestamp, speaker, text, state, domain, escalated
		FROM transcript_lines ORDER BY datetime(timestamp) DESC, id DESC`)
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.TranscriptRecord
	for rows.Next() {
		var rec domain.TranscriptRecord
		var ts, speaker, state string
		var escalated int
		if err := rows.Scan(&rec.SessionID, &ts, &speaker, &rec.Text, &state, &rec.Domain, &escalated); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Speaker = domain.Speaker(speaker)
		rec.State = domain.SessionState(state)
		rec.Escalated = escalated == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all transcript lines.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM transcript_lines")
	return err
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) fallback() *FileStore {
	return NewFileStore(s.path + ".jsonl")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.TranscriptRepository = (*SQLiteStore)(nil)
