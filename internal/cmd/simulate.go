package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"retirecast/internal/cli"
	"retirecast/internal/config"
	"retirecast/internal/sim"
	"retirecast/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagCSVOut string
	flagLedger bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Run a scenario and print the summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagCSVOut, "csv", "", "Write the per-year ledger to a CSV file")
	simulateCmd.Flags().BoolVar(&flagLedger, "ledger", false, "Print the per-year ledger table")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(_ *cobra.Command, args []string) error {
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

	result, err := sim.New().Run(plan)
	if err != nil {
		return err
	}

	name := scenario.Name
	if name == "" {
		name = filepath.Base(args[0])
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RETIRECAST  %s", name)))
	fmt.Println()
	fmt.Print(renderSummary(plan, result))

	if result.InsufficientFunds {
		fmt.Println(cli.RenderWarning(fmt.Sprintf(
			"funds run short starting at age %d; later years are zero-filled", result.FirstShortfallAge)))
	}

	if flagLedger {
		fmt.Println()
		fmt.Print(renderLedger(result))
	}

	if flagCSVOut != "" {
		if err := os.MkdirAll(filepath.Dir(flagCSVOut), 0o755); err != nil {
			return err
		}
		if err := sim.WriteLedgerCSV(flagCSVOut, result.Rows); err != nil {
			return err
		}
		progressf("  Wrote %d rows to %s\n", len(result.Rows), flagCSVOut)
	}

	if !flagNoSave && !app.General.NoSave {
		st, err := openStore(app)
		if err != nil {
			progressf("  Store unavailable, run not saved: %v\n", err)
			return nil
		}
		defer st.Close()

		id, err := st.SaveRun(store.RunMeta{
			Name:          name,
			FilingStatus:  string(plan.Profile.Status),
			StartAge:      plan.StartAge,
			HorizonYears:  plan.HorizonYears,
			Strategy:      plan.Strategy.Name(),
			ConversionsOn: plan.Conversions.Enabled,
		}, result)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		progressf("  Saved as run %d\n", id)
	}

	return nil
}

func renderSummary(plan *sim.Plan, result *sim.Result) string {
	pairs := [][2]string{
		{"Years simulated", fmt.Sprintf("%d (ages %d-%d)", len(result.Rows), plan.StartAge, plan.StartAge+plan.HorizonYears-1)},
		{"Lifetime tax", cli.FormatMoney(result.LifetimeTax)},
		{"Lifetime spending", cli.FormatMoney(result.LifetimeSpending)},
		{"Roth conversions", cli.FormatMoney(result.TotalConversions)},
		{"Ending net worth", cli.FormatMoney(result.EndingNetWorth)},
		{"Ending taxable", cli.FormatMoney(result.EndBalances.Taxable)},
		{"Ending tax-deferred", cli.FormatMoney(result.EndBalances.Deferred)},
		{"Ending Roth", cli.FormatMoney(result.EndBalances.Roth)},
	}
	if len(result.Rows) == 0 {
		pairs = pairs[:1]
	}
	return cli.RenderKV(pairs)
}

func renderLedger(result *sim.Result) string {
	rows := make([][]string, 0, len(result.Rows))
	for _, r := range result.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Age),
			string(r.Stage),
			cli.FormatMoney(r.Spending),
			cli.FormatMoney(r.SocialSecurity),
			cli.FormatMoney(r.WithdrawTaxable),
			cli.FormatMoney(r.WithdrawDeferred),
			cli.FormatMoney(r.WithdrawRoth),
			cli.FormatMoney(r.Conversion),
			cli.FormatMoney(r.TotalTax),
			cli.FormatMoney(r.NetWorth),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   "Ledger",
		Headers: []string{"Age", "Stage", "Spend", "SS", "W-Tax", "W-Def", "W-Roth", "Conv", "Tax", "NetWorth"},
		Rows:    rows,
	})
}
