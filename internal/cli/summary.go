package cli

import (
	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/spf13/cobra"
)

const defaultSummaryDays = 7

func (a *app) summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Daily focus/break totals (default: last 7 days)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := entity.DateOf(a.now())
			from := today.AddDays(-(defaultSummaryDays - 1)).String()
			to := today.String()

			if cmd.Flags().Changed("from") {
				from, _ = cmd.Flags().GetString("from")
			}
			if cmd.Flags().Changed("to") {
				to, _ = cmd.Flags().GetString("to")
			}

			summary, err := a.api.GetSummary(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			return a.printSummary(summary)
		},
	}
	cmd.Flags().String("from", "", "first day, YYYY-MM-DD")
	cmd.Flags().String("to", "", "last day, YYYY-MM-DD")
	return cmd
}
