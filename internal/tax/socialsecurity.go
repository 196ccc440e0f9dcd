package tax

import "math"

// TaxableSocialSecurity computes the taxable portion of an annual Social
// Security benefit using the provisional-income formula.
//
// Provisional income is otherIncome plus half the benefit (tax-exempt
// interest, when present, belongs in otherIncome). The two statutory
// thresholds split the result into 0%, up-to-50%, and up-to-85% tiers.
// Married-filing-separately filers are taxed on 85% of the benefit
// regardless of income. The result never exceeds 0.85 * benefit.
func TaxableSocialSecurity(p Profile, benefit, otherIncome float64) float64 {
	if benefit <= 0 {
		return 0
	}
	if p.Status == StatusMarriedSeparate {
		return 0.85 * benefit
	}

	provisional := otherIncome + 0.5*benefit
	switch {
	case provisional <= p.SSBaseThreshold:
		return 0
	case provisional <= p.SSUpperThreshold:
		return math.Min(0.5*benefit, provisional-p.SSBaseThreshold)
	default:
		return math.Min(0.85*benefit, 0.5*benefit+(provisional-p.SSUpperThreshold))
	}
}
