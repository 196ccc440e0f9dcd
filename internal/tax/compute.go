package tax

import "math"

// Breakdown itemizes one year's tax liability.
type Breakdown struct {
	TaxableSS       float64 // taxable portion of Social Security benefits
	TaxableOrdinary float64 // ordinary income after deduction
	TaxableGains    float64 // gains after any excess deduction carryover
	OrdinaryTax     float64
	CapGainsTax     float64
	StateTax        float64
	Total           float64
}

// Compute returns the total federal + state liability for one year.
//
// ordinaryIncome is pre-deduction ordinary income (withdrawals from
// tax-deferred accounts, Roth conversions, interest). capGains is realized
// long-term gains. ssBenefit is the gross Social Security benefit; its
// taxable portion is derived here and added to ordinary income.
//
// The standard deduction reduces ordinary income first, floored at zero;
// any excess carries over to reduce gains. Gains are then stacked on top of
// ordinary taxable income against the capital-gains tiers. State tax is a
// flat rate on ordinary taxable income plus gains taxed above the 0% tier.
func Compute(p Profile, ordinaryIncome, capGains, ssBenefit, stateRate float64) (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}

	var bd Breakdown
	bd.TaxableSS = TaxableSocialSecurity(p, ssBenefit, ordinaryIncome+capGains)

	grossOrdinary := ordinaryIncome + bd.TaxableSS
	bd.TaxableOrdinary = math.Max(0, grossOrdinary-p.StandardDeduction)
	excessDeduction := math.Max(0, p.StandardDeduction-grossOrdinary)
	bd.TaxableGains = math.Max(0, capGains-excessDeduction)

	bd.OrdinaryTax = bracketTax(p.OrdinaryBrackets, bd.TaxableOrdinary)

	gainsTax, taxedGains := stackedGainsTax(p.CapGainsBrackets, bd.TaxableOrdinary, bd.TaxableGains)
	bd.CapGainsTax = gainsTax

	bd.StateTax = (bd.TaxableOrdinary + taxedGains) * stateRate
	bd.Total = bd.OrdinaryTax + bd.CapGainsTax + bd.StateTax
	return bd, nil
}

// bracketTax walks a progressive schedule. Income above the final limit is
// taxed at the final rate.
func bracketTax(brackets []Bracket, taxable float64) float64 {
	tax := 0.0
	prev := 0.0
	for _, b := range brackets {
		if taxable > b.Limit {
			tax += (b.Limit - prev) * b.Rate
			prev = b.Limit
		} else {
			tax += math.Max(0, taxable-prev) * b.Rate
			return tax
		}
	}
	last := brackets[len(brackets)-1]
	tax += (taxable - prev) * last.Rate
	return tax
}

// stackedGainsTax fills the capital-gains tiers starting at the bracket
// position already occupied by ordinary taxable income. Returns the gains
// tax and the portion of gains taxed above the zero tier (the state-taxable
// part).
func stackedGainsTax(brackets []Bracket, ordinaryTaxable, gains float64) (tax, taxedAboveZero float64) {
	remaining := gains
	floor := ordinaryTaxable
	for _, b := range brackets {
		if remaining <= 0 {
			return tax, taxedAboveZero
		}
		room := math.Max(0, b.Limit-floor)
		inTier := math.Min(remaining, room)
		tax += inTier * b.Rate
		if b.Rate > 0 {
			taxedAboveZero += inTier
		}
		remaining -= inTier
		floor += inTier
	}
	if remaining > 0 {
		last := brackets[len(brackets)-1]
		tax += remaining * last.Rate
		if last.Rate > 0 {
			taxedAboveZero += remaining
		}
	}
	return tax, taxedAboveZero
}
