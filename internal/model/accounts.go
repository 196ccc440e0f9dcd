package model

import (
	"errors"
	"math"
)

// AccountParams defines the growth assumptions for the three buckets.
// Rates are annual fractions (0.05 = 5%).
type AccountParams struct {
	GrowthTaxable  float64
	GrowthDeferred float64
	GrowthRoth     float64
}

// AccountState captures mutable balances. Basis is the remaining cost basis
// inside the taxable account; realized gains on a sale are the sale amount
// times (1 - basis fraction).
type AccountState struct {
	Taxable  float64
	Deferred float64
	Roth     float64
	Basis    float64
}

// Accounts bundles params + state, mutated once per simulated year.
type Accounts struct {
	Params AccountParams
	State  AccountState
}

func NewAccounts(params AccountParams, initial AccountState) (*Accounts, error) {
	a := &Accounts{Params: params, State: initial}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Accounts) Validate() error {
	s := a.State
	if s.Taxable < 0 || s.Deferred < 0 || s.Roth < 0 {
		return errors.New("balances must be >= 0")
	}
	if s.Basis < 0 {
		return errors.New("basis must be >= 0")
	}
	if s.Basis > s.Taxable {
		return errors.New("basis cannot exceed the taxable balance")
	}
	p := a.Params
	if p.GrowthTaxable < -1 || p.GrowthDeferred < -1 || p.GrowthRoth < -1 {
		return errors.New("growth rates must be > -100%")
	}
	return nil
}

// NetWorth is the sum of all three balances.
func (a *Accounts) NetWorth() float64 {
	return a.State.Taxable + a.State.Deferred + a.State.Roth
}

// BasisFraction is the share of the taxable balance that is cost basis.
// Zero when the account is empty.
func (a *Accounts) BasisFraction() float64 {
	if a.State.Taxable <= 0 {
		return 0
	}
	return a.State.Basis / a.State.Taxable
}

// YearFlows are the cash movements settled at the end of a simulated year.
// WithdrawDeferred includes the RMD. PlannedSale is the forced turnover sale
// amount; its basis consumption only applies when nothing was withdrawn from
// the taxable account (a withdrawal subsumes the turnover).
type YearFlows struct {
	WithdrawTaxable  float64
	WithdrawDeferred float64
	WithdrawRoth     float64
	Conversion       float64
	PlannedSale      float64
}

// ApplyYear settles one year's flows: basis is consumed in proportion to the
// taxable withdrawal (or the forced sale), then withdrawals and the Roth
// conversion move out of their buckets, then growth applies to the post-flow
// balances. Balances are floored at zero.
func (a *Accounts) ApplyYear(f YearFlows) {
	s := &a.State

	if s.Taxable > 0 {
		frac := s.Basis / s.Taxable
		reduction := math.Min(s.Basis, frac*f.WithdrawTaxable)
		s.Basis = math.Max(0, s.Basis-reduction)
		if f.PlannedSale > 0 && f.WithdrawTaxable == 0 {
			saleReduction := math.Min(s.Basis, frac*f.PlannedSale)
			s.Basis = math.Max(0, s.Basis-saleReduction)
		}
	}

	s.Deferred = math.Max(0, (s.Deferred-f.WithdrawDeferred-f.Conversion)*(1+a.Params.GrowthDeferred))
	// Realizing a turnover gain is a tax event, not a cash flow, so the
	// taxable balance only moves by the withdrawal.
	s.Taxable = math.Max(0, (s.Taxable-f.WithdrawTaxable)*(1+a.Params.GrowthTaxable))
	s.Roth = math.Max(0, (s.Roth+f.Conversion-f.WithdrawRoth)*(1+a.Params.GrowthRoth))

	if s.Basis > s.Taxable {
		s.Basis = s.Taxable
	}
}
