package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yubzen/relay/internal/state"
)

const timeLayout = "2006-01-02 15:04:05"

func newHistoryCmd(a *app) *cobra.Command {
	var dbPath string
	var limit int

	open := func() (*state.DB, error) {
		path := dbPath
		if path == "" {
			path = a.cfg.Journal.Path
		}
		return state.Connect(path)
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()
			return runHistoryList(cmd, db, limit)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print every recorded step of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()
			return runHistoryShow(cmd, db, args[0])
		},
	}

	historyCmd.PersistentFlags().StringVar(&dbPath, "db", "", "journal database (default from config)")
	historyCmd.Flags().IntVar(&limit, "limit", state.DefaultHistoryLimit, "number of runs to list")
	historyCmd.AddCommand(showCmd)
	return historyCmd
}

func runHistoryList(cmd *cobra.Command, db *state.DB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
	fmt.Fprintln(w, "RUN_ID\tCREATED_AT\tDOMAIN\tMODE\tSTATUS\tSTOP\tOBJECTIVE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID[:8],
			run.CreatedAt.Local().Format(timeLayout),
			run.Domain,
			run.Mode,
			run.Status,
			dash(run.StopReason),
			truncate(run.Objective, 48),
		)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, db *state.DB, id string) error {
	ctx := cmd.Context()
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}
	steps, err := db.GetSteps(ctx, run.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", run.ID)
	fmt.Fprintf(out, "Domain:    %s (%s)\n", run.Domain, run.Mode)
	fmt.Fprintf(out, "Objective: %s\n", run.Objective)
	fmt.Fprintf(out, "Status:    %s\n", run.Status)
	if run.StopReason != "" {
		fmt.Fprintf(out, "Stop:      %s\n", run.StopReason)
	}
	fmt.Fprintf(out, "Started:   %s\n", run.CreatedAt.Local().Format(timeLayout))
	if run.FinishedAt != nil {
		fmt.Fprintf(out, "Duration:  %s\n", run.FinishedAt.Sub(run.CreatedAt).Round(time.Millisecond))
	}
	if run.ReportPath != "" {
		fmt.Fprintf(out, "Report:    %s\n", run.ReportPath)
	}

	for _, step := range steps {
		label := step.Kind
		if step.Iteration > 0 {
			label = fmt.Sprintf("%s #%d", step.Kind, step.Iteration)
		}
		fmt.Fprintf(out, "\n--- %d. %s (%s) ---\n%s\n", step.Seq, label, step.Role, step.Content)
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
