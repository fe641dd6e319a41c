package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yubzen/relay/internal/agent"
	"github.com/yubzen/relay/internal/console"
	"github.com/yubzen/relay/internal/dataset"
	"github.com/yubzen/relay/internal/domain"
	"github.com/yubzen/relay/internal/providers"
	"github.com/yubzen/relay/internal/redact"
	"github.com/yubzen/relay/internal/report"
	"github.com/yubzen/relay/internal/state"
)

type runOptions struct {
	objective     string
	dataPath      string
	mode          string
	maxIterations int
	outputDir     string
	noJournal     bool
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [domain]",
		Short: "Run the orchestrator/worker/refiner loop for an objective",
		Long: `Prompts for an objective (or takes --objective), lets the orchestrator
decompose it, relays sub-tasks to the worker until the orchestrator signals
completion, then refines every result into a plan and saves a report.

Modes:
  structured  the orchestrator answers with a JSON decision; capped at
              --max-iterations worker calls (default 8)
  compat      completion is the literal substring "Task complete"; no cap
              unless --max-iterations is set`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Defaults.Domain
			if len(args) == 1 {
				name = args[0]
			}
			if !cmd.Flags().Changed("max-iterations") {
				opts.maxIterations = a.cfg.Defaults.MaxIterations
			}
			return a.run(cmd, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.objective, "objective", "o", "", "objective to pursue (prompted when empty)")
	cmd.Flags().StringVar(&opts.dataPath, "data", "", "YAML or JSON dataset file replacing the built-in data")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "loop mode: structured or compat")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "maximum worker calls (0 uses the mode default)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for the report file")
	cmd.Flags().BoolVar(&opts.noJournal, "no-journal", false, "do not record the run in the journal")
	return cmd
}

func (a *app) run(cmd *cobra.Command, name string, opts runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	log := a.logger

	dom, err := domain.Lookup(name)
	if err != nil {
		return err
	}

	modeName := opts.mode
	if modeName == "" {
		modeName = a.cfg.Defaults.Mode
	}
	mode, err := agent.ParseMode(modeName)
	if err != nil {
		return err
	}

	data, err := a.loadDataset(dom, opts.dataPath)
	if err != nil {
		return err
	}

	var db *state.DB
	if !opts.noJournal && a.cfg.Journal.Enabled {
		db, err = state.Connect(a.cfg.Journal.Path)
		if err != nil {
			log.Warn("journal unavailable, continuing without it", zap.String("path", a.cfg.Journal.Path), zap.Error(err))
			db = nil
		} else {
			defer db.Close()
		}
	}

	objective := strings.TrimSpace(opts.objective)
	if objective == "" {
		var suggestions []string
		if db != nil {
			suggestions, err = db.RecentObjectives(ctx, dom.Name, 0)
			if err != nil {
				log.Debug("recent objectives unavailable", zap.Error(err))
			}
		}
		prompter := &console.Prompter{In: a.stdin, Out: out}
		answer, err := prompter.Ask(ctx, dom.ObjectivePrompt, suggestions)
		if err != nil {
			return err
		}
		objective = strings.TrimSpace(answer)
	}
	if objective == "" {
		return agent.ErrEmptyObjective
	}

	kind, err := providers.ParseKind(a.cfg.Provider.Kind)
	if err != nil {
		return err
	}
	apiKey := a.cfg.APIKey(kind)
	if apiKey == "" {
		apiKey, _ = providers.LoadCredential(string(kind))
	}
	base, err := a.newProvider(providers.Config{Kind: kind, APIKey: apiKey, BaseURL: a.cfg.Provider.BaseURL})
	if err != nil {
		return err
	}
	if err := base.Ping(ctx); err != nil {
		return err
	}
	provider := providers.WithRetry(base, a.cfg.RetryPolicy(), log)

	var journal *state.Journal
	if db != nil {
		journal = db.Begin(ctx, dom.Name, objective, string(mode), log)
	}

	screen := console.New(out, dom)
	models := a.cfg.ModelsFor(dom.Name)
	pipeline, err := agent.NewPipeline(dom, agent.Options{
		Provider:          provider,
		OrchestratorModel: models.Orchestrator,
		WorkerModel:       models.Worker,
		RefinerModel:      models.Refiner,
		Mode:              mode,
		MaxIterations:     opts.maxIterations,
		Redactor:          redact.New(apiKey),
		Logger:            log,
		Notify: func(ev agent.Event) {
			screen.Handle(ev)
			if !ev.Pending {
				journal.Step(ctx, ev.Iteration, string(ev.Role), ev.Type.String(), ev.Text)
			}
		},
	})
	if err != nil {
		journal.Finish(ctx, state.StatusFailed, "", "")
		return err
	}

	log.Debug("run started",
		zap.String("domain", dom.Name),
		zap.String("mode", string(mode)),
		zap.Int("max_iterations", opts.maxIterations),
		zap.String("run_id", journal.RunID()))

	outcome, err := pipeline.Run(ctx, objective, data)
	if err != nil {
		status := state.StatusFailed
		if agent.IsCancelled(err) {
			status = state.StatusCancelled
		}
		journal.Finish(ctx, status, string(outcome.Stop), "")
		if id := journal.RunID(); id != "" && len(outcome.Outputs) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d sub-task results kept in run %s\n", len(outcome.Outputs), id)
		}
		return err
	}

	screen.Plan(outcome.Plan)
	if outcome.Stop == agent.StopLimit {
		screen.Stopped(outcome.Iterations)
	}

	dir := opts.outputDir
	if dir == "" {
		dir = a.cfg.Defaults.OutputDir
	}
	writer := &report.Writer{Dir: dir, Now: a.now}
	path, err := writer.Write(dom.ReportPrefix, report.Report{
		Objective: objective,
		Breakdown: outcome.Breakdown,
		PlanTitle: dom.PlanTitle,
		Plan:      outcome.Plan,
	})
	if err != nil {
		journal.Finish(ctx, state.StatusFailed, string(outcome.Stop), "")
		return err
	}
	journal.Finish(ctx, state.StatusCompleted, string(outcome.Stop), path)
	screen.Saved(path)
	return nil
}

func (a *app) loadDataset(dom *domain.Domain, path string) (*dataset.Dataset, error) {
	if path == "" {
		path = a.cfg.DataFor(dom.Name)
	}
	if path == "" {
		return dom.Data(), nil
	}
	data, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("dataset loaded", zap.String("path", path), zap.Int("records", data.Len()))
	return data, nil
}
