package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yubzen/relay/internal/dataset"
	"github.com/yubzen/relay/internal/domain"
	"github.com/yubzen/relay/internal/providers"
	"github.com/yubzen/relay/internal/redact"
)

// Options wires one provider into the three roles of a domain.
type Options struct {
	Provider          providers.Provider
	OrchestratorModel string
	WorkerModel       string
	RefinerModel      string
	Mode              Mode
	MaxIterations     int
	Redactor          *redact.Redactor
	Logger            *zap.Logger
	Notify            func(Event)
}

// Pipeline runs the loop and then refines every accumulated output into
// the final plan.
type Pipeline struct {
	Loop    *Loop
	Refiner *Refiner
}

type Outcome struct {
	Result
	Plan string
}

func NewPipeline(dom *domain.Domain, opts Options) (*Pipeline, error) {
	if err := dom.Validate(); err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = ModeStructured
	}

	build := func(role Role, model string) (*Agent, error) {
		a := NewAgent(role, model, opts.Provider)
		a.Redactor = opts.Redactor
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return a, nil
	}

	orch, err := build(RoleOrchestrator, opts.OrchestratorModel)
	if err != nil {
		return nil, err
	}
	worker, err := build(RoleWorker, opts.WorkerModel)
	if err != nil {
		return nil, err
	}
	refiner, err := build(RoleRefiner, opts.RefinerModel)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Loop: &Loop{
			Orchestrator:  &Orchestrator{Agent: orch, Domain: dom, Mode: opts.Mode},
			Worker:        &Worker{Agent: worker, Domain: dom},
			MaxIterations: opts.MaxIterations,
			Notify:        opts.Notify,
			Logger:        opts.Logger,
		},
		Refiner: &Refiner{Agent: refiner, Domain: dom},
	}, nil
}

// Run executes the loop, then exactly one refiner call over the joined
// worker outputs. A loop error skips refinement and returns the partial
// outcome.
func (p *Pipeline) Run(ctx context.Context, objective string, data *dataset.Dataset) (Outcome, error) {
	res, err := p.Loop.Run(ctx, objective, data)
	out := Outcome{Result: res}
	if err != nil {
		return out, err
	}

	results := res.Joined()
	p.Loop.emit(Event{Type: EventRefine, Role: RoleRefiner, Pending: true, Prompt: results})
	plan, err := p.Refiner.Refine(ctx, objective, results, data)
	if err != nil {
		return out, fmt.Errorf("refiner: %w", err)
	}
	out.Plan = plan
	p.Loop.emit(Event{Type: EventRefine, Role: RoleRefiner, Prompt: results, Text: plan})
	return out, nil
}
