package state

import (
	"context"

	"go.uber.org/zap"
)

// Journal records one run. Write failures are logged and swallowed; a
// broken journal never stops the loop. A nil *Journal is a no-op.
type Journal struct {
	db     *DB
	run    *Run
	logger *zap.Logger
}

func (db *DB) Begin(ctx context.Context, domain, objective, mode string, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	run, err := db.CreateRun(ctx, domain, objective, mode)
	if err != nil {
		logger.Warn("journal: create run failed", zap.Error(err))
		return nil
	}
	logger.Debug("journal: run started", zap.String("run_id", run.ID))
	return &Journal{db: db, run: run, logger: logger}
}

func (j *Journal) RunID() string {
	if j == nil {
		return ""
	}
	return j.run.ID
}

func (j *Journal) Step(ctx context.Context, iteration int, role, kind, content string) {
	if j == nil {
		return
	}
	if _, err := j.db.AppendStep(context.WithoutCancel(ctx), j.run.ID, iteration, role, kind, content); err != nil {
		j.logger.Warn("journal: append step failed",
			zap.String("run_id", j.run.ID), zap.String("kind", kind), zap.Error(err))
	}
}

func (j *Journal) Finish(ctx context.Context, status RunStatus, stopReason, reportPath string) {
	if j == nil {
		return
	}
	if err := j.db.FinishRun(context.WithoutCancel(ctx), j.run.ID, status, stopReason, reportPath); err != nil {
		j.logger.Warn("journal: finish run failed", zap.String("run_id", j.run.ID), zap.Error(err))
	}
}
