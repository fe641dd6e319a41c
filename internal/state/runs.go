package state

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultHistoryLimit = 20

func (db *DB) CreateRun(ctx context.Context, domain, objective, mode string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Domain:    domain,
		Objective: objective,
		Mode:      mode,
		Status:    StatusRunning,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO runs (id, domain, objective, mode, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Domain, run.Objective, run.Mode, string(run.Status), run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (db *DB) FinishRun(ctx context.Context, id string, status RunStatus, stopReason, reportPath string) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, stop_reason = ?, report_path = ?, finished_at = ?
		WHERE id = ?
	`, string(status), stopReason, reportPath, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, domain, objective, mode, status, stop_reason, report_path, created_at, finished_at
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun accepts a full run ID or an unambiguous prefix of one.
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrRunNotFound
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, domain, objective, mode, status, stop_reason, report_path, created_at, finished_at
		FROM runs
		WHERE id = ? OR id LIKE ? || '%'
		ORDER BY (id = ?) DESC
		LIMIT 2
	`, id, id, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case found[0].ID == id || len(found) == 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// RecentObjectives returns distinct objectives previously run for domain,
// newest first. The console offers them as completions.
func (db *DB) RecentObjectives(ctx context.Context, domain string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT objective
		FROM runs
		WHERE domain = ?
		GROUP BY objective
		ORDER BY MAX(created_at) DESC
		LIMIT ?
	`, strings.TrimSpace(domain), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var objective string
		if err := rows.Scan(&objective); err != nil {
			return nil, err
		}
		objective = strings.TrimSpace(objective)
		if objective == "" {
			continue
		}
		out = append(out, objective)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run      Run
		status   string
		finished sql.NullTime
	)
	if err := row.Scan(&run.ID, &run.Domain, &run.Objective, &run.Mode, &status,
		&run.StopReason, &run.ReportPath, &run.CreatedAt, &finished); err != nil {
		return Run{}, err
	}
	run.Status = RunStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}
