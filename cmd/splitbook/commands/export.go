package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splitbook/internal/report"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an XLSX balance report for all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := report.BalancesXLSX(repository.Groups())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, raw, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "balances.xlsx", "output file path")
	return cmd
}
