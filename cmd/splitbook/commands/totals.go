package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"splitbook/internal/ledger"
	"splitbook/internal/repo"
)

func totalsCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Print aggregate owed/received totals across all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			totals := ledger.UserTotals(repository.Groups(), user)
			fmt.Fprintf(cmd.OutOrStdout(), "%s owes %.2f and is owed %.2f across %d groups\n",
				user, totals.TotalOwed, totals.TotalReceived, len(repository.Groups()))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", repo.DefaultSelf, "member name to total")
	return cmd
}
