package sim

import (
	"errors"
	"fmt"

	"retirecast/internal/model"
	"retirecast/internal/strategy"
	"retirecast/internal/tax"
)

// ErrNegativeInput is returned when a plan carries a negative balance,
// income, or rate. Fatal: the simulation is rejected before it starts.
var ErrNegativeInput = errors.New("negative input")

// SocialSecurityPlan describes the household's benefit.
type SocialSecurityPlan struct {
	StartAge      int
	AnnualBenefit float64 // benefit at the claiming age, in today's dollars
	COLA          float64 // annual cost-of-living growth after claiming
}

// ConversionPolicy controls Roth conversions.
type ConversionPolicy struct {
	Enabled bool
	// TargetRate is the ordinary bracket whose ceiling conversions fill
	// (default 0.12). When the profile has no bracket at this rate the
	// second bracket's ceiling is used.
	TargetRate float64
	// IRMAACap additionally keeps MAGI under the profile's IRMAA tier-0
	// threshold. On by default.
	IRMAACap bool
}

// Plan is the full configuration for one simulation run.
type Plan struct {
	Profile  tax.Profile
	Accounts model.Accounts

	StartAge     int
	HorizonYears int

	SpendingBase  float64 // first-year spending target, grows with inflation
	InflationRate float64
	StateTaxRate  float64
	// TurnoverRate is the fraction of the taxable balance sold each year by
	// fund turnover, realizing gains even when nothing is withdrawn.
	TurnoverRate float64

	SocialSecurity SocialSecurityPlan
	Conversions    ConversionPolicy

	Strategy strategy.Strategy
}

// Validate rejects malformed plans before the loop runs. Profile problems
// surface as tax.ErrInvalidProfile, negative amounts as ErrNegativeInput.
func (p *Plan) Validate() error {
	if err := p.Profile.Validate(); err != nil {
		return err
	}
	if err := p.Accounts.Validate(); err != nil {
		return fmt.Errorf("%w: accounts: %v", ErrNegativeInput, err)
	}
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"spending", p.SpendingBase},
		{"inflation rate", p.InflationRate},
		{"state tax rate", p.StateTaxRate},
		{"turnover rate", p.TurnoverRate},
		{"social security benefit", p.SocialSecurity.AnnualBenefit},
		{"social security cola", p.SocialSecurity.COLA},
	} {
		if check.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0", ErrNegativeInput, check.name)
		}
	}
	if p.StartAge < 0 {
		return fmt.Errorf("%w: start age must be >= 0", ErrNegativeInput)
	}
	if p.HorizonYears < 0 {
		return fmt.Errorf("%w: horizon years must be >= 0", ErrNegativeInput)
	}
	if p.TurnoverRate > 1 {
		return fmt.Errorf("turnover rate must be <= 1")
	}
	// Without a claiming age the COLA would compound from age zero.
	if p.SocialSecurity.AnnualBenefit > 0 && p.SocialSecurity.StartAge <= 0 {
		return fmt.Errorf("social security benefit requires a claiming age")
	}
	if p.Strategy == nil {
		return fmt.Errorf("strategy is nil")
	}
	return nil
}
