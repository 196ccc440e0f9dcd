package sim

import "retirecast/internal/model"

// YearRow is one row of per-year output.
// This is the primary artifact for "what happened" in a simulation: an
// immutable snapshot appended to the result ledger and never revised.
type YearRow struct {
	YearIdx int
	Age     int

	Stage model.Stage

	Spending float64

	SocialSecurity float64
	TaxableSS      float64

	RMD              float64
	WithdrawTaxable  float64
	WithdrawDeferred float64
	WithdrawRoth     float64
	Conversion       float64

	RealizedGains float64

	OrdinaryTax float64
	CapGainsTax float64
	StateTax    float64
	TotalTax    float64

	StartBalances  model.AccountState
	EndBalances    model.AccountState
	NetWorth       float64
	BasisRemaining float64

	// Shortfall is spending the portfolio could not cover this year.
	Shortfall float64
	// Converged is false when the tax/withdrawal solver hit its iteration
	// cap without settling.
	Converged bool
}

// Result is the ordered ledger of a full run plus lifetime aggregates.
type Result struct {
	Rows []YearRow

	LifetimeTax      float64
	LifetimeSpending float64
	TotalConversions float64

	EndBalances    model.AccountState
	EndingNetWorth float64

	// InsufficientFunds reports that at least one year could not meet its
	// spending target. Not fatal: depleted years stay in the ledger with
	// zero withdrawals.
	InsufficientFunds bool
	FirstShortfallAge int
}
