package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yubzen/relay/internal/dataset"
	"github.com/yubzen/relay/internal/domain"
)

func TestAsCancelled(t *testing.T) {
	assert.NoError(t, asCancelled(nil))
	assert.ErrorIs(t, asCancelled(context.Canceled), ErrRunCancelled)
	assert.ErrorIs(t, asCancelled(fmt.Errorf("wrapped: %w", context.Canceled)), ErrRunCancelled)

	wrapped := fmt.Errorf("worker iteration 2: %w", ErrRunCancelled)
	assert.Equal(t, wrapped, asCancelled(wrapped))

	other := errors.New("other")
	assert.Equal(t, other, asCancelled(other))
	assert.True(t, IsCancelled(context.Canceled))
	assert.True(t, IsCancelled(wrapped))
	assert.False(t, IsCancelled(context.DeadlineExceeded))
}

func TestAgentRunHonorsCancelledContext(t *testing.T) {
	p := &scriptedProvider{replies: []string{"never"}}
	a := NewAgent(RoleWorker, "m", p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx, "x")
	require.ErrorIs(t, err, ErrRunCancelled)
	assert.Equal(t, 0, p.callCount())
}

func TestLoopStopsWhenCancelledBetweenCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orch := &scriptedProvider{replies: []string{"analyze spending", "keep going"}}
	work := &scriptedProvider{replies: []string{"first result", "second result"}}
	loop := newTestLoop(orch, work, ModeCompat, 0)
	loop.Notify = func(ev Event) {
		if ev.Type == EventCheck && !ev.Pending {
			cancel()
		}
	}

	res, err := loop.Run(ctx, "Reduce monthly expenses by 10%", dataset.Finance())
	require.ErrorIs(t, err, ErrRunCancelled)
	assert.Equal(t, []string{"first result"}, res.Outputs)
	assert.Equal(t, "first result", res.Breakdown)
	assert.Equal(t, 1, work.callCount())
}

func newTestLoop(orch, work *scriptedProvider, mode Mode, max int) *Loop {
	dom := domain.Finance()
	return &Loop{
		Orchestrator:  &Orchestrator{Agent: NewAgent(RoleOrchestrator, "orch-model", orch), Domain: dom, Mode: mode},
		Worker:        &Worker{Agent: NewAgent(RoleWorker, "work-model", work), Domain: dom},
		MaxIterations: max,
	}
}
