package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yubzen/relay/internal/providers"
)

func newModelsCmd(a *app) *cobra.Command {
	var timeout time.Duration
	modelsCmd := &cobra.Command{
		Use:   "models [provider]",
		Short: "List models offered by the configured or named provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Provider.Kind
			if len(args) == 1 {
				name = args[0]
			}
			kind, err := providers.ParseKind(name)
			if err != nil {
				return err
			}

			p, err := a.newProvider(providers.Config{Kind: kind, APIKey: a.cfg.APIKey(kind), BaseURL: a.cfg.Provider.BaseURL})
			if err != nil {
				return err
			}
			if err := p.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("%w (run `relay auth set %s`)", err, kind)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			models, err := p.ListModels(ctx)
			if err != nil {
				return err
			}
			a.logger.Debug("models listed", zap.String("provider", p.Name()), zap.Int("count", len(models)))
			sort.Strings(models)

			configured := a.cfg.ModelsFor(a.cfg.Defaults.Domain)
			roles := map[string][]string{}
			for role, m := range map[string]string{
				"orchestrator": configured.Orchestrator,
				"worker":       configured.Worker,
				"refiner":      configured.Refiner,
			} {
				roles[m] = append(roles[m], role)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tROLES")
			for _, m := range models {
				used := roles[strings.TrimPrefix(m, "models/")]
				sort.Strings(used)
				fmt.Fprintf(w, "%s\t%s\n", m, dash(strings.Join(used, ",")))
			}
			return w.Flush()
		},
	}
	modelsCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "provider model query timeout")
	return modelsCmd
}
