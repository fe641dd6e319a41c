package agent

import (
	"context"
	"fmt"

	"github.com/yubzen/relay/internal/dataset"
	"github.com/yubzen/relay/internal/domain"
)

// Orchestrator decomposes the objective and judges completion.
type Orchestrator struct {
	*Agent
	Domain *domain.Domain
	Mode   Mode
}

// Orchestrate sends the decomposition prompt, or override verbatim when it
// is non-empty (the completion-check variant).
func (o *Orchestrator) Orchestrate(ctx context.Context, objective string, data *dataset.Dataset, override string) (string, error) {
	prompt := override
	if prompt == "" {
		var err error
		prompt, err = o.DecomposePrompt(objective, data)
		if err != nil {
			return "", err
		}
	}
	return o.Run(ctx, prompt)
}

func (o *Orchestrator) DecomposePrompt(objective string, data *dataset.Dataset) (string, error) {
	serialized, err := o.Domain.Serialize(data)
	if err != nil {
		return "", fmt.Errorf("serialize dataset: %w", err)
	}
	return o.Domain.Render(o.Domain.Prompts.Decompose, domain.PromptData{
		Objective:  objective,
		Data:       serialized,
		Structured: o.Mode == ModeStructured,
	})
}

// CheckPrompt builds the completion-check override. Only the latest worker
// output is shown; earlier results are not repeated.
func (o *Orchestrator) CheckPrompt(latest string) (string, error) {
	return o.Domain.Render(o.Domain.Prompts.Check, domain.PromptData{
		Latest:     latest,
		Structured: o.Mode == ModeStructured,
	})
}

// Worker executes one sub-task prompt against the dataset.
type Worker struct {
	*Agent
	Domain *domain.Domain
}

func (w *Worker) Act(ctx context.Context, prompt string, data *dataset.Dataset) (string, error) {
	serialized, err := w.Domain.Serialize(data)
	if err != nil {
		return "", fmt.Errorf("serialize dataset: %w", err)
	}
	full, err := w.Domain.Render(w.Domain.Prompts.Work, domain.PromptData{Prompt: prompt, Data: serialized})
	if err != nil {
		return "", err
	}
	return w.Run(ctx, full)
}

// Refiner consolidates every sub-task output into the final plan. It may
// suggest dataset changes in its text but never applies them.
type Refiner struct {
	*Agent
	Domain *domain.Domain
}

func (r *Refiner) Refine(ctx context.Context, objective, results string, data *dataset.Dataset) (string, error) {
	serialized, err := r.Domain.Serialize(data)
	if err != nil {
		return "", fmt.Errorf("serialize dataset: %w", err)
	}
	prompt, err := r.Domain.Render(r.Domain.Prompts.Refine, domain.PromptData{
		Objective: objective,
		Results:   results,
		Data:      serialized,
	})
	if err != nil {
		return "", err
	}
	return r.Run(ctx, prompt)
}
