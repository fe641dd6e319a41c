package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yubzen/relay/internal/dataset"
)

// DefaultMaxIterations bounds structured-mode runs that set no cap.
const DefaultMaxIterations = 8

var ErrEmptyObjective = errors.New("objective is empty")

type StopReason string

const (
	// StopDecomposed means the first orchestrator reply already signalled
	// completion; no worker ran.
	StopDecomposed StopReason = "decomposed"
	StopComplete   StopReason = "complete"
	StopLimit      StopReason = "iteration_limit"
)

// Result is the accumulated state of one loop run. Outputs is append-only
// and holds one worker reply per completed sub-task.
type Result struct {
	Breakdown  string
	Outputs    []string
	Iterations int
	Stop       StopReason
}

// Joined returns the worker outputs separated by newlines, or "" when no
// worker ran.
func (r Result) Joined() string {
	return strings.Join(r.Outputs, "\n")
}

// Loop drives DECOMPOSE -> WORK -> CHECK -> (WORK | DONE).
type Loop struct {
	Orchestrator  *Orchestrator
	Worker        *Worker
	MaxIterations int
	Notify        func(Event)
	Logger        *zap.Logger
	now           func() time.Time
}

func (l *Loop) limit() int {
	if l.MaxIterations > 0 {
		return l.MaxIterations
	}
	if l.Orchestrator.Mode == ModeCompat {
		return 0
	}
	return DefaultMaxIterations
}

func (l *Loop) decide(text string) Decision {
	if l.Orchestrator.Mode == ModeCompat {
		return CompatDecision(text)
	}
	return ParseDecision(text)
}

func (l *Loop) emit(ev Event) {
	if l.Notify == nil {
		return
	}
	if l.now != nil {
		ev.At = l.now()
	} else {
		ev.At = time.Now()
	}
	l.Notify(ev)
}

func (l *Loop) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Run executes the loop for objective against data. On error the partial
// Result gathered so far is returned alongside it.
func (l *Loop) Run(ctx context.Context, objective string, data *dataset.Dataset) (Result, error) {
	var res Result
	if ctx == nil {
		ctx = context.Background()
	}
	if l.Orchestrator == nil || l.Worker == nil {
		return res, ErrAgentNotReady
	}
	// Compat mode sends whatever the caller typed.
	if l.Orchestrator.Mode != ModeCompat && strings.TrimSpace(objective) == "" {
		return res, ErrEmptyObjective
	}
	log := l.logger()

	prompt, err := l.Orchestrator.DecomposePrompt(objective, data)
	if err != nil {
		return res, err
	}
	l.emit(Event{Type: EventDecompose, Role: RoleOrchestrator, Pending: true, Prompt: prompt})
	reply, err := l.Orchestrator.Orchestrate(ctx, objective, data, prompt)
	if err != nil {
		return res, fmt.Errorf("orchestrator decompose: %w", err)
	}
	l.emit(Event{Type: EventDecompose, Role: RoleOrchestrator, Prompt: prompt, Text: reply})

	decision := l.decide(reply)
	if decision.Done() {
		log.Debug("objective complete at decomposition")
		res.Breakdown = reply
		res.Stop = StopDecomposed
		return res, nil
	}

	limit := l.limit()
	for {
		if limit > 0 && res.Iterations >= limit {
			log.Warn("iteration limit reached", zap.Int("limit", limit))
			res.Stop = StopLimit
			break
		}
		if err := stillRunning(ctx); err != nil {
			res.Breakdown = res.Joined()
			return res, err
		}

		iteration := res.Iterations + 1
		l.emit(Event{Type: EventWork, Role: RoleWorker, Iteration: iteration, Pending: true, Prompt: decision.Prompt})
		output, err := l.Worker.Act(ctx, decision.Prompt, data)
		if err != nil {
			res.Breakdown = res.Joined()
			return res, fmt.Errorf("worker iteration %d: %w", iteration, err)
		}
		res.Outputs = append(res.Outputs, output)
		res.Iterations = iteration
		l.emit(Event{Type: EventWork, Role: RoleWorker, Iteration: iteration, Prompt: decision.Prompt, Text: output})
		log.Debug("sub-task finished", zap.Int("iteration", iteration), zap.Int("bytes", len(output)))

		check, err := l.Orchestrator.CheckPrompt(output)
		if err != nil {
			res.Breakdown = res.Joined()
			return res, err
		}
		l.emit(Event{Type: EventCheck, Role: RoleOrchestrator, Iteration: iteration, Pending: true, Prompt: check})
		reply, err := l.Orchestrator.Orchestrate(ctx, objective, data, check)
		if err != nil {
			res.Breakdown = res.Joined()
			return res, fmt.Errorf("orchestrator check %d: %w", iteration, err)
		}
		l.emit(Event{Type: EventCheck, Role: RoleOrchestrator, Iteration: iteration, Prompt: check, Text: reply})

		decision = l.decide(reply)
		if decision.Done() {
			res.Stop = StopComplete
			break
		}
	}

	res.Breakdown = res.Joined()
	return res, nil
}
