package state

import (
	"context"
	"time"
)

// Step is one role call recorded against a run.
type Step struct {
	ID        int64
	RunID     string
	Seq       int
	Iteration int
	Role      string
	Kind      string
	Content   string
	CreatedAt time.Time
}

func (db *DB) AppendStep(ctx context.Context, runID string, iteration int, role, kind, content string) (*Step, error) {
	step := &Step{
		RunID:     runID,
		Iteration: iteration,
		Role:      role,
		Kind:      kind,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	err := db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM steps WHERE run_id = ?", runID).Scan(&step.Seq)
	if err != nil {
		return nil, err
	}
	res, err := db.conn.ExecContext(ctx, "INSERT INTO steps (run_id, seq, iteration, role, kind, content, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		step.RunID, step.Seq, step.Iteration, step.Role, step.Kind, step.Content, step.CreatedAt)
	if err != nil {
		return nil, err
	}
	step.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return step, nil
}

func (db *DB) GetSteps(ctx context.Context, runID string) ([]Step, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, run_id, seq, iteration, role, kind, content, created_at FROM steps WHERE run_id = ? ORDER BY seq ASC", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var steps []Step
	for rows.Next() {
		var s Step
		if err := rows.Scan(&s.ID, &s.RunID, &s.Seq, &s.Iteration, &s.Role, &s.Kind, &s.Content, &s.CreatedAt); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
