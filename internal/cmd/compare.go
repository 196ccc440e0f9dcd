package cmd

import (
	"fmt"
	"path/filepath"

	"retirecast/internal/cli"
	"retirecast/internal/config"
	"retirecast/internal/sim"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario.yaml> [scenario.yaml...]",
	Short: "Run several scenarios and compare their outcomes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	profiles := app.Profiles()
	engine := sim.New()

	rows := make([][]string, 0, len(args))
	for _, path := range args {
		scenario, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		plan, err := scenario.ToPlan(profiles)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		result, err := engine.Run(plan)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		name := scenario.Name
		if name == "" {
			name = filepath.Base(path)
		}
		shortfall := "-"
		if result.InsufficientFunds {
			shortfall = fmt.Sprintf("age %d", result.FirstShortfallAge)
		}
		rows = append(rows, []string{
			name,
			cli.FormatMoney(result.LifetimeTax),
			cli.FormatMoney(result.TotalConversions),
			cli.FormatMoney(result.EndingNetWorth),
			cli.FormatMoney(result.EndBalances.Roth),
			shortfall,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Scenario comparison",
		Headers: []string{"Scenario", "Lifetime Tax", "Conversions", "Net Worth", "Roth", "Shortfall"},
		Rows:    rows,
	}))
	return nil
}
