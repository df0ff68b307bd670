// Package history persists the question/answer log in SQLite.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial conversations table
const currentSchemaVersion = 1

// Clock supplies timestamps for new rows.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies row ids.
type IDGenerator interface {
	Generate() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type uuidGenerator struct{}

// Generate returns a UUIDv7, so ids sort by creation time.
func (uuidGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Conversation is one stored turn.
type Conversation struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	RequestID string    `json:"request_id,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
}

// Store is the conversation log.
//
// Thread-safety: safe for concurrent use; the pool is limited to one
// connection, so writes are serialized.
type Store struct {
	db    *sql.DB
	clock Clock
	ids   IDGenerator
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the timestamp source.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithIDGenerator sets the row id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

// Open creates or opens the log at path and applies the schema.
// Safe to call on an existing database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, clock: systemClock{}, ids: uuidGenerator{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save appends one turn and returns the stored row.
func (s *Store) Save(ctx context.Context, requestID, kind, question, response string) (Conversation, error) {
	c := Conversation{
		ID:        s.ids.Generate(),
		Time:      s.clock.Now().UTC().Truncate(time.Microsecond),
		RequestID: requestID,
		Kind:      kind,
		Question:  question,
		Response:  response,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, ts, request_id, kind, user_question, chatbot_response)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Time.Format(time.RFC3339Nano), c.RequestID, c.Kind, c.Question, c.Response)
	if err != nil {
		return Conversation{}, fmt.Errorf("save conversation: %w", err)
	}
	return c, nil
}

// List returns up to limit turns, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Conversation, error) {
	query := `
		SELECT id, ts, request_id, kind, user_question, chatbot_response
		FROM conversations
		ORDER BY ts DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var c Conversation
		var ts string
		if err := rows.Scan(&c.ID, &ts, &c.RequestID, &c.Kind, &c.Question, &c.Response); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		if c.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return out, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
