package cmd

import (
	"fmt"

	"retirecast/internal/analysis"
	"retirecast/internal/cli"
	"retirecast/internal/config"
	"retirecast/internal/sim"

	"github.com/spf13/cobra"
)

var flagRankBy string

var sweepCmd = &cobra.Command{
	Use:   "sweep <scenario.yaml>",
	Short: "Sweep Roth-conversion ceilings and rank the outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&flagRankBy, "rank-by", "net-worth", "Ranking: net-worth or lifetime-tax")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	scenario, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	plan, err := scenario.ToPlan(app.Profiles())
	if err != nil {
		return err
	}

	outcomes, err := analysis.SweepConversions(sim.New(), plan)
	if err != nil {
		return err
	}

	var ranked []analysis.ConversionOutcome
	switch flagRankBy {
	case "net-worth":
		ranked = analysis.RankByEndingNetWorth(outcomes)
	case "lifetime-tax":
		ranked = analysis.RankByLifetimeTax(outcomes)
	default:
		return fmt.Errorf("unknown ranking %q (want net-worth or lifetime-tax)", flagRankBy)
	}

	rows := make([][]string, 0, len(ranked))
	for i, o := range ranked {
		shortfall := "-"
		if o.InsufficientFunds {
			shortfall = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			o.Label,
			cli.FormatMoney(o.LifetimeTax),
			cli.FormatMoney(o.TotalConversions),
			cli.FormatMoney(o.EndingNetWorth),
			cli.FormatMoney(o.EndingRoth),
			shortfall,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Conversion sweep (ranked by %s)", flagRankBy),
		Headers: []string{"Rank", "Ceiling", "Lifetime Tax", "Converted", "Net Worth", "Roth", "Short"},
		Rows:    rows,
	}))
	return nil
}
