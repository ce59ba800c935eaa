package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/glebarez/go-sqlite"
)

// Entry is one agent request and its outcome.
type Entry struct {
	ID         int64
	RequestID  string
	Session    string
	Prompt     string
	ToolChoice string
	ToolInput  string
	// Tool is the registered tool that ran, empty when the input was echoed.
	Tool      string
	Output    string
	Error     string
	CreatedAt time.Time
}

// Journal is an append-only SQLite log of agent decisions.
type Journal struct {
	DB *sql.DB
}

func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open journal %s", dbPath)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			session TEXT,
			prompt TEXT,
			tool_choice TEXT,
			tool_input TEXT,
			tool TEXT,
			output TEXT,
			error TEXT,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions (session);`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to initialize journal schema")
		}
	}

	return &Journal{DB: db}, nil
}

func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `INSERT INTO decisions (request_id, session, prompt, tool_choice, tool_input, tool, output, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := j.DB.ExecContext(ctx, query,
		e.RequestID, e.Session, e.Prompt, e.ToolChoice, e.ToolInput, e.Tool, e.Output, e.Error, e.CreatedAt.UnixNano())
	if err != nil {
		return errors.Wrap(err, "failed to record decision")
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-empty session
// restricts the result to that session.
func (j *Journal) Recent(ctx context.Context, session string, limit int) ([]Entry, error) {
	query := `SELECT id, request_id, session, prompt, tool_choice, tool_input, tool, output, error, created_at
		FROM decisions`
	var args []any
	if session != "" {
		query += ` WHERE session = ?`
		args = append(args, session)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query journal")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Session, &e.Prompt, &e.ToolChoice,
			&e.ToolInput, &e.Tool, &e.Output, &e.Error, &created); err != nil {
			return nil, errors.Wrap(err, "failed to scan journal row")
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (j *Journal) Close() error {
	return j.DB.Close()
}
