package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, rows []YearRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"age",
		"stage",
		"spending",
		"social_security",
		"taxable_ss",
		"rmd",
		"withdraw_taxable",
		"withdraw_deferred",
		"withdraw_roth",
		"conversion",
		"realized_gains",
		"ordinary_tax",
		"cap_gains_tax",
		"state_tax",
		"total_tax",
		"bal_taxable",
		"bal_deferred",
		"bal_roth",
		"net_worth",
		"basis_remaining",
		"shortfall",
		"converged",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.YearIdx),
			strconv.Itoa(r.Age),
			string(r.Stage),
			fmtFloat(r.Spending),
			fmtFloat(r.SocialSecurity),
			fmtFloat(r.TaxableSS),
			fmtFloat(r.RMD),
			fmtFloat(r.WithdrawTaxable),
			fmtFloat(r.WithdrawDeferred),
			fmtFloat(r.WithdrawRoth),
			fmtFloat(r.Conversion),
			fmtFloat(r.RealizedGains),
			fmtFloat(r.OrdinaryTax),
			fmtFloat(r.CapGainsTax),
			fmtFloat(r.StateTax),
			fmtFloat(r.TotalTax),
			fmtFloat(r.EndBalances.Taxable),
			fmtFloat(r.EndBalances.Deferred),
			fmtFloat(r.EndBalances.Roth),
			fmtFloat(r.NetWorth),
			fmtFloat(r.BasisRemaining),
			fmtFloat(r.Shortfall),
			strconv.FormatBool(r.Converged),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
