package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"splitbook/internal/ledger"
	"splitbook/internal/models"
)

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <group name or id>",
		Short: "Print a group's member balances and suggested transfers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := findGroup(args[0])
			if group == nil {
				return fmt.Errorf("no group named %q", args[0])
			}

			balances := ledger.GroupBalances(group)
			members := make([]string, 0, len(balances))
			for member := range balances {
				members = append(members, member)
			}
			sort.Strings(members)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\n", group.Name)
			for _, member := range members {
				balance := balances[member]
				switch {
				case balance > 0.005:
					fmt.Fprintf(w, "%s\towes\t%.2f\n", member, balance)
				case balance < -0.005:
					fmt.Fprintf(w, "%s\tis owed\t%.2f\n", member, -balance)
				default:
					fmt.Fprintf(w, "%s\tsettled\t\n", member)
				}
			}

			transfers := ledger.SuggestSettlements(balances)
			if len(transfers) > 0 {
				fmt.Fprintln(w, "\nTo settle up:")
				for _, t := range transfers {
					fmt.Fprintf(w, "%s\t-> %s\t%.2f\n", t.From, t.To, t.Amount)
				}
			}
			return w.Flush()
		},
	}
}

// findGroup resolves the argument as a group id first, then as a name.
func findGroup(arg string) *models.Group {
	if group := repository.Group(arg); group != nil {
		return group
	}
	for _, group := range repository.Groups() {
		if group.Name == arg {
			g := group
			return &g
		}
	}
	return nil
}
