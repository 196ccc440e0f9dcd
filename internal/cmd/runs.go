package cmd

import (
	"fmt"
	"strconv"

	"retirecast/internal/cli"

	"github.com/spf13/cobra"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage saved simulation runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved run's summary and ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsRm,
}

func init() {
	runsListCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsRmCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(_ *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	st, err := openStore(app)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		conv := "off"
		if r.ConversionsOn {
			conv = "on"
		}
		short := "-"
		if r.InsufficientFunds {
			short = fmt.Sprintf("age %d", r.FirstShortfallAge)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.Name,
			r.FilingStatus,
			fmt.Sprintf("%d+%d", r.StartAge, r.HorizonYears),
			r.Strategy,
			conv,
			cli.FormatMoney(r.LifetimeTax),
			cli.FormatMoney(r.EndingNetWorth),
			short,
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Saved runs",
		Headers: []string{"ID", "Name", "Status", "Ages", "Strategy", "Conv", "Lifetime Tax", "Net Worth", "Shortfall", "Saved"},
		Rows:    rows,
	}))
	return nil
}

func runRunsShow(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	st, err := openStore(app)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.GetRun(id)
	if err != nil {
		return err
	}
	years, err := st.GetYears(id)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("Run %d: %s", meta.ID, meta.Name)))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Filing status", meta.FilingStatus},
		{"Ages", fmt.Sprintf("%d to %d", meta.StartAge, meta.StartAge+meta.HorizonYears-1)},
		{"Strategy", meta.Strategy},
		{"Lifetime tax", cli.FormatMoney(meta.LifetimeTax)},
		{"Total conversions", cli.FormatMoney(meta.TotalConversions)},
		{"Ending net worth", cli.FormatMoney(meta.EndingNetWorth)},
		{"Saved", meta.CreatedAt.Format("2006-01-02 15:04")},
	}))
	if meta.InsufficientFunds {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Spending not fully funded from age %d", meta.FirstShortfallAge)))
	}

	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{
			fmt.Sprintf("%d", y.Age),
			string(y.Stage),
			cli.FormatMoney(y.Spending),
			cli.FormatMoney(y.TotalTax),
			cli.FormatMoney(y.Conversion),
			cli.FormatMoney(y.EndBalances.Taxable),
			cli.FormatMoney(y.EndBalances.Deferred),
			cli.FormatMoney(y.EndBalances.Roth),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Ledger",
		Headers: []string{"Age", "Stage", "Spending", "Tax", "Conversion", "Taxable", "Deferred", "Roth"},
		Rows:    rows,
	}))
	return nil
}

func runRunsRm(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	st, err := openStore(app)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.GetRun(id); err != nil {
		return err
	}
	if err := st.DeleteRun(id); err != nil {
		return err
	}
	fmt.Printf("Deleted run %d.\n", id)
	return nil
}
