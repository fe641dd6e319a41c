// Package cli builds the relay command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yubzen/relay/internal/config"
	"github.com/yubzen/relay/internal/logging"
	"github.com/yubzen/relay/internal/providers"
)

// app carries what PersistentPreRunE resolves for every subcommand.
type app struct {
	configPath string
	envDir     string
	verbose    bool
	logFile    string

	cfg    *config.Config
	logger *zap.Logger

	newProvider func(providers.Config) (providers.Provider, error)
	stdin       io.Reader
	now         func() time.Time
}

func newApp() *app {
	return &app{
		envDir:      ".",
		newProvider: providers.New,
		stdin:       os.Stdin,
		now:         time.Now,
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	logger, err := logging.New(logging.Options{Verbose: a.verbose, File: a.logFile})
	if err != nil {
		return err
	}
	a.logger = logger

	path := strings.TrimSpace(a.configPath)
	if path == "" {
		path = config.GetConfigPath()
	}
	a.configPath = path

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.envDir); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", zap.String("path", path), zap.String("provider", cfg.Provider.Kind))
	return nil
}

// NewRootCmd returns the relay command tree.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(newApp(), version)
}

func newRootCmd(a *app, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "relay",
		Short: "Orchestrator, worker and refiner agents over a domain dataset",
		Long: `relay breaks an objective into sub-tasks with an orchestrator model, runs
each sub-task with a worker model against a domain dataset, and has a refiner
model consolidate the results into a plan that is printed and saved.

Run "relay run" for the interactive financial planner or
"relay run supply-chain" for the supply chain optimizer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/relay/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write JSON logs to this file instead of stderr")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the relay version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "relay %s\n", version)
		},
	}

	rootCmd.AddCommand(
		newRunCmd(a),
		newDomainsCmd(a),
		newHistoryCmd(a),
		newAuthCmd(a),
		newModelsCmd(a),
		newConfigCmd(a),
		versionCmd,
	)
	return rootCmd
}
