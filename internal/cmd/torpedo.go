package cmd

import (
	"fmt"

	"retirecast/internal/analysis"
	"retirecast/internal/cli"
	"retirecast/internal/tax"

	"github.com/spf13/cobra"
)

var (
	flagTorpedoBenefit float64
	flagTorpedoBase    float64
	flagTorpedoSpan    float64
	flagTorpedoStep    float64
	flagTorpedoState   float64
)

var torpedoCmd = &cobra.Command{
	Use:   "torpedo [filing-status]",
	Short: "Scan the Social Security tax-torpedo marginal-rate curve",
	Long: "Sample the effective marginal rate on ordinary income with a fixed Social\n" +
		"Security benefit. Extra income drags more of the benefit into taxability, so\n" +
		"the effective rate spikes above the statutory bracket.",
	Args: cobra.MaximumNArgs(1),
	RunE: runTorpedo,
}

func init() {
	torpedoCmd.Flags().Float64Var(&flagTorpedoBenefit, "benefit", 36000, "Annual Social Security benefit")
	torpedoCmd.Flags().Float64Var(&flagTorpedoBase, "base", 0, "Starting other ordinary income")
	torpedoCmd.Flags().Float64Var(&flagTorpedoSpan, "span", 80000, "Income span to scan")
	torpedoCmd.Flags().Float64Var(&flagTorpedoStep, "step", 2000, "Sample step size")
	torpedoCmd.Flags().Float64Var(&flagTorpedoState, "state-rate", 0, "Flat state tax rate")
	rootCmd.AddCommand(torpedoCmd)
}

func runTorpedo(_ *cobra.Command, args []string) error {
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

	scan, err := analysis.TorpedoScan(profile, flagTorpedoBenefit, flagTorpedoBase,
		flagTorpedoSpan, flagTorpedoStep, flagTorpedoState)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(scan.Points))
	for _, pt := range scan.Points {
		marker := ""
		if pt.OtherIncome == scan.PeakIncome {
			marker = "<- peak"
		}
		rows = append(rows, []string{
			cli.FormatMoney(pt.OtherIncome),
			cli.FormatMoney(pt.TotalTax),
			cli.FormatPct(pt.MarginalRate),
			marker,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Tax torpedo: %s, %s benefit", status, cli.FormatMoney(flagTorpedoBenefit)),
		Headers: []string{"Other Income", "Total Tax", "Marginal", ""},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Peak marginal rate", cli.FormatPct(scan.PeakRate)},
		{"At other income", cli.FormatMoney(scan.PeakIncome)},
	}))
	return nil
}
