// Package state is the sqlite run journal. Each run and every role call in
// it is written as it happens, so a crash mid-loop keeps the sub-task
// outputs completed so far.
package state

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrRunNotFound = errors.New("run not found")

type DB struct {
	conn *sql.DB
}

func Connect(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per-connection.
	conn.SetMaxOpenConns(1)

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		domain TEXT NOT NULL,
		objective TEXT NOT NULL,
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		stop_reason TEXT NOT NULL DEFAULT '',
		report_path TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		finished_at DATETIME
	);
	CREATE TABLE IF NOT EXISTS steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		iteration INTEGER NOT NULL DEFAULT 0,
		role TEXT NOT NULL,
		kind TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_steps_run ON steps(run_id, seq);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);`
	_, err := db.Exec(schema)
	return err
}

func (db *DB) Close() error {
	return db.conn.Close()
}

type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

type Run struct {
	ID         string
	Domain     string
	Objective  string
	Mode       string
	Status     RunStatus
	StopReason string
	ReportPath string
	CreatedAt  time.Time
	FinishedAt *time.Time
}
