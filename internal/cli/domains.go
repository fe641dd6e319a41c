package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yubzen/relay/internal/domain"
)

func newDomainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List the built-in domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
			fmt.Fprintln(w, "DOMAIN\tRECORDS\tDATA\tDESCRIPTION")
			for _, name := range domain.Names() {
				dom, err := domain.Lookup(name)
				if err != nil {
					return err
				}
				source := "built-in"
				if path := a.cfg.DataFor(name); path != "" {
					source = path
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", dom.Name, dom.Data().Len(), source, dom.Description)
			}
			return w.Flush()
		},
	}
}
