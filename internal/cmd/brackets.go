package cmd

import (
	"fmt"

	"retirecast/internal/cli"
	"retirecast/internal/tax"

	"github.com/spf13/cobra"
)

var flagBracketsYear int

var bracketsCmd = &cobra.Command{
	Use:   "brackets [filing-status]",
	Short: "Show the tax tables for a filing status",
	Long: "Print the ordinary and capital-gains brackets, standard deduction, Social\n" +
		"Security thresholds, and IRMAA limit for a filing status. Defaults to\n" +
		"married-joint; table overrides from the app config are applied.",
	Args: cobra.MaximumNArgs(1),
	RunE: runBrackets,
}

func init() {
	bracketsCmd.Flags().IntVar(&flagBracketsYear, "years-ahead", 0, "Index brackets this many years forward at 2.5% inflation")
	rootCmd.AddCommand(bracketsCmd)
}

func runBrackets(_ *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	status := tax.StatusMarriedJoint
	if len(args) == 1 {
		status = tax.FilingStatus(args[0])
	}

	profile, ok := app.Profiles()[status]
	if !ok {
		return fmt.Errorf("unknown filing status %q (want one of %v)", status, tax.Statuses)
	}
	if flagBracketsYear > 0 {
		profile = profile.Indexed(flagBracketsYear, 0.025, 0.025)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("Tax tables: %s", status)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Ordinary income",
		Headers: []string{"Rate", "Up To"},
		Rows:    bracketRows(profile.OrdinaryBrackets),
	}))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Long-term capital gains",
		Headers: []string{"Rate", "Up To"},
		Rows:    bracketRows(profile.CapGainsBrackets),
	}))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Standard deduction", cli.FormatMoney(profile.StandardDeduction)},
		{"SS base threshold", cli.FormatMoney(profile.SSBaseThreshold)},
		{"SS upper threshold", cli.FormatMoney(profile.SSUpperThreshold)},
		{"IRMAA tier-0 limit", cli.FormatMoney(profile.IRMAATier0)},
	}))
	return nil
}

func bracketRows(brackets []tax.Bracket) [][]string {
	rows := make([][]string, 0, len(brackets))
	for i, b := range brackets {
		limit := cli.FormatMoney(b.Limit)
		if i == len(brackets)-1 {
			limit = "above"
		}
		rows = append(rows, []string{cli.FormatPct(b.Rate), limit})
	}
	return rows
}
