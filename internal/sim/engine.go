package sim

import (
	"fmt"
	"math"

	"retirecast/internal/model"
	"retirecast/internal/strategy"
	"retirecast/internal/tax"
)

const (
	// solverIterations caps the per-year fixed-point loop over taxes,
	// withdrawals, realized gains, and the conversion amount. Each round
	// shrinks the residual by the marginal tax rate, so forty rounds pin
	// the fixed point inside the tolerance.
	solverIterations = 40
	solverTolerance  = 1e-6
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the year-by-year simulation. The plan is taken by value
// semantics: the engine works on its own copy of the account state, so a
// plan can be re-run or swept without resetting anything.
func (e *Engine) Run(plan *Plan) (*Result, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is nil")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	accounts := plan.Accounts
	acct := &accounts
	initialNetWorth := acct.NetWorth()

	res := &Result{Rows: make([]YearRow, 0, plan.HorizonYears)}

	for yearIdx := 0; yearIdx < plan.HorizonYears; yearIdx++ {
		age := plan.StartAge + yearIdx
		prof := plan.Profile.Indexed(yearIdx, plan.InflationRate, plan.SocialSecurity.COLA)

		spend := plan.SpendingBase * math.Pow(1+plan.InflationRate, float64(yearIdx))
		ss := 0.0
		if age >= plan.SocialSecurity.StartAge {
			ss = plan.SocialSecurity.AnnualBenefit *
				math.Pow(1+plan.SocialSecurity.COLA, float64(age-plan.SocialSecurity.StartAge))
		}

		rmd := tax.RMD(acct.State.Deferred, age)
		plannedSale := acct.State.Taxable * plan.TurnoverRate
		basisFrac := acct.BasisFraction()
		plannedGain := plannedSale * (1 - basisFrac)

		yr, err := e.solveYear(plan, prof, acct, yearIdx, age, spend, ss, rmd, basisFrac, plannedGain)
		if err != nil {
			return nil, fmt.Errorf("year %d (age %d): %w", yearIdx, age, err)
		}

		startBalances := acct.State
		wDeferredTotal := rmd + yr.alloc.Deferred

		if yr.shortfall > 0 && !res.InsufficientFunds {
			res.InsufficientFunds = true
			res.FirstShortfallAge = age
		}

		stage := model.ClassifyStage(model.StageInputs{
			YearIdx:          yearIdx,
			Balances:         startBalances,
			WithdrawTaxable:  yr.alloc.Taxable,
			WithdrawDeferred: wDeferredTotal,
			WithdrawRoth:     yr.alloc.Roth,
			Conversion:       yr.conversion,
			SocialSecurity:   ss,
			Spending:         spend,
			InitialNetWorth:  initialNetWorth,
		})

		acct.ApplyYear(model.YearFlows{
			WithdrawTaxable:  yr.alloc.Taxable,
			WithdrawDeferred: wDeferredTotal,
			WithdrawRoth:     yr.alloc.Roth,
			Conversion:       yr.conversion,
			PlannedSale:      plannedSale,
		})

		row := YearRow{
			YearIdx: yearIdx,
			Age:     age,
			Stage:   stage,

			Spending:       spend,
			SocialSecurity: ss,
			TaxableSS:      yr.tax.TaxableSS,

			RMD:              rmd,
			WithdrawTaxable:  yr.alloc.Taxable,
			WithdrawDeferred: wDeferredTotal,
			WithdrawRoth:     yr.alloc.Roth,
			Conversion:       yr.conversion,

			RealizedGains: yr.realizedGain,

			OrdinaryTax: yr.tax.OrdinaryTax,
			CapGainsTax: yr.tax.CapGainsTax,
			StateTax:    yr.tax.StateTax,
			TotalTax:    yr.tax.Total,

			StartBalances:  startBalances,
			EndBalances:    acct.State,
			NetWorth:       acct.NetWorth(),
			BasisRemaining: acct.State.Basis,

			Shortfall: yr.shortfall,
			Converged: yr.converged,
		}
		res.Rows = append(res.Rows, row)

		res.LifetimeTax += yr.tax.Total
		res.LifetimeSpending += spend
		res.TotalConversions += yr.conversion
	}

	res.EndBalances = acct.State
	res.EndingNetWorth = acct.NetWorth()
	return res, nil
}

// yearSolution is the fixed point the solver settles on for one year.
type yearSolution struct {
	conversion   float64
	tax          tax.Breakdown
	alloc        strategy.Withdrawal // beyond-RMD withdrawals per bucket
	realizedGain float64
	shortfall    float64
	converged    bool
}

// solveYear iterates taxes <-> withdrawals <-> realized gains <-> conversion
// to a fixed point. Taxes depend on realized gains, the conversion, and the
// deferred withdrawal beyond the RMD; the cash need depends on taxes;
// withdrawals depend on the need; realized gains depend on the taxable
// withdrawal. Converged=false is recorded when the loop fails to settle.
func (e *Engine) solveYear(
	plan *Plan, prof tax.Profile, acct *model.Accounts,
	yearIdx, age int, spend, ss, rmd, basisFrac, plannedGain float64,
) (yearSolution, error) {
	var sol yearSolution
	estGain := plannedGain

	ceiling := 0.0
	if plan.Conversions.Enabled {
		ceiling = conversionCeiling(prof, plan.Conversions)
	}

	for it := 0; it < solverIterations; it++ {
		taxableSS := tax.TaxableSocialSecurity(prof, ss, rmd+estGain)

		convCand := 0.0
		if plan.Conversions.Enabled {
			ordBeforeConv := math.Max(0, rmd+taxableSS-prof.StandardDeduction)
			roomBracket := math.Max(0, ceiling-ordBeforeConv)
			convCand = math.Max(0, math.Min(acct.State.Deferred-rmd, roomBracket))
			if plan.Conversions.IRMAACap {
				roomIRMAA := math.Max(0, prof.IRMAATier0-(rmd+estGain+taxableSS))
				convCand = math.Min(convCand, roomIRMAA)
			}
		}

		ordinary := rmd + convCand + sol.alloc.Deferred
		bd, err := tax.Compute(prof, ordinary, estGain, ss, plan.StateTaxRate)
		if err != nil {
			return yearSolution{}, err
		}

		need := math.Max(0, spend+bd.Total-ss-rmd)
		avail := strategy.Available{
			Taxable:  acct.State.Taxable,
			Deferred: math.Max(0, acct.State.Deferred-rmd-convCand),
			Roth:     acct.State.Roth,
		}
		alloc := plan.Strategy.Allocate(strategy.Context{
			YearIdx:   yearIdx,
			Age:       age,
			Need:      need,
			Available: avail,
		})
		alloc = clampAlloc(alloc, avail)

		// A taxable withdrawal subsumes the forced turnover; otherwise
		// the turnover gain stands on its own.
		gainNew := plannedGain
		if alloc.Taxable > 0 {
			gainNew = math.Max(0, alloc.Taxable*(1-basisFrac))
		}

		// The accepted tax was computed from the previous round's deferred
		// withdrawal, so that delta has to settle too before the solution
		// is internally consistent.
		done := math.Abs(gainNew-estGain) < solverTolerance &&
			math.Abs(convCand-sol.conversion) < solverTolerance &&
			math.Abs(alloc.Deferred-sol.alloc.Deferred) < solverTolerance

		sol.conversion = convCand
		sol.tax = bd
		sol.alloc = alloc
		sol.realizedGain = gainNew
		sol.shortfall = math.Max(0, need-alloc.Total())
		estGain = gainNew

		if done {
			sol.converged = true
			break
		}
	}

	return sol, nil
}

func conversionCeiling(prof tax.Profile, policy ConversionPolicy) float64 {
	rate := policy.TargetRate
	if rate == 0 {
		rate = 0.12
	}
	return prof.BracketCeiling(rate)
}

func clampAlloc(w strategy.Withdrawal, avail strategy.Available) strategy.Withdrawal {
	return strategy.Withdrawal{
		Taxable:  clamp(w.Taxable, avail.Taxable),
		Deferred: clamp(w.Deferred, avail.Deferred),
		Roth:     clamp(w.Roth, avail.Roth),
	}
}

func clamp(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
