package analysis

import "retirecast/internal/tax"

// TorpedoPoint is one sample of the effective marginal-rate curve.
type TorpedoPoint struct {
	OtherIncome  float64
	TotalTax     float64
	MarginalRate float64
}

// TorpedoScan samples the effective marginal rate on ordinary income as it
// rises from baseIncome across span, with a fixed Social Security benefit in
// the picture. The scan exposes the "tax torpedo": the marginal-rate spike
// where each extra dollar of income also drags more of the benefit into
// taxability, so the effective rate can exceed the top statutory bracket
// touched.
type TorpedoScanResult struct {
	Points []TorpedoPoint

	PeakRate   float64
	PeakIncome float64
}

func TorpedoScan(p tax.Profile, ssBenefit, baseIncome, span, step, stateRate float64) (TorpedoScanResult, error) {
	if step <= 0 {
		step = 1000
	}
	var scan TorpedoScanResult

	for income := baseIncome; income <= baseIncome+span; income += step {
		lo, err := tax.Compute(p, income, 0, ssBenefit, stateRate)
		if err != nil {
			return TorpedoScanResult{}, err
		}
		hi, err := tax.Compute(p, income+step, 0, ssBenefit, stateRate)
		if err != nil {
			return TorpedoScanResult{}, err
		}

		marginal := (hi.Total - lo.Total) / step
		scan.Points = append(scan.Points, TorpedoPoint{
			OtherIncome:  income,
			TotalTax:     lo.Total,
			MarginalRate: marginal,
		})
		if marginal > scan.PeakRate {
			scan.PeakRate = marginal
			scan.PeakIncome = income
		}
	}
	return scan, nil
}
