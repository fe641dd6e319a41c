package agent

import (
	"context"
	"errors"
)

// ErrRunCancelled marks a run stopped by its context, typically Ctrl-C
// between or during model calls. Outputs gathered before it are kept.
var ErrRunCancelled = errors.New("run cancelled")

// asCancelled folds context.Canceled into ErrRunCancelled. Deadlines and
// provider errors pass through unchanged.
func asCancelled(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRunCancelled):
		return err
	case errors.Is(err, context.Canceled):
		return ErrRunCancelled
	}
	return err
}

func stillRunning(ctx context.Context) error {
	return asCancelled(ctx.Err())
}

// IsCancelled reports whether err ended a run by cancellation.
func IsCancelled(err error) bool {
	return errors.Is(asCancelled(err), ErrRunCancelled)
}
