package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yubzen/relay/internal/providers"
)

func newAuthCmd(a *app) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API credentials in the OS keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAuthList(cmd)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List provider credential status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAuthList(cmd)
		},
	}

	var setKey string
	setCmd := &cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := providers.ParseKind(args[0])
			if err != nil {
				return err
			}

			key := strings.TrimSpace(setKey)
			if key == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Enter API key for %s: ", kind)
				line, err := bufio.NewReader(a.stdin).ReadString('\n')
				if err != nil && strings.TrimSpace(line) == "" {
					return fmt.Errorf("read api key: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return errors.New("api key cannot be empty")
			}

			if err := providers.StoreCredential(string(kind), key); err != nil {
				return fmt.Errorf("store key for %s: %w", kind, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s\n", kind)
			return nil
		},
	}
	setCmd.Flags().StringVar(&setKey, "key", "", "API key value")

	removeCmd := &cobra.Command{
		Use:     "remove <provider>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove the stored API key for a provider",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := providers.ParseKind(args[0])
			if err != nil {
				return err
			}
			if err := providers.DeleteCredential(string(kind)); err != nil {
				if errors.Is(err, providers.ErrCredentialNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No stored key to remove for %s\n", kind)
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s\n", kind)
			return nil
		},
	}

	authCmd.AddCommand(listCmd, setCmd, removeCmd)
	return authCmd
}

func (a *app) runAuthList(cmd *cobra.Command) error {
	kinds := providers.Kinds()
	provs := make([]providers.Provider, 0, len(kinds))
	sources := make(map[string]string, len(kinds))
	for _, kind := range kinds {
		key := a.cfg.APIKey(kind)
		source := "keyring"
		if key != "" {
			source = "env " + kind.EnvVar()
		}
		p, err := a.newProvider(providers.Config{Kind: kind, APIKey: key})
		if err != nil {
			return err
		}
		provs = append(provs, p)
		sources[p.Name()] = source
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tSTATUS\tSOURCE")
	for _, status := range providers.CheckAll(cmd.Context(), provs) {
		state, source := "not connected", "-"
		if status.IsOnline {
			state, source = "connected", sources[status.Name]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", status.Name, state, source)
	}
	return w.Flush()
}
