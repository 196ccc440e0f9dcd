package models

import "time"

// SimulateResponse represents the response from a simulation run.
type SimulateResponse struct {
	ID      int64       `json:"id,omitempty"`
	Status  string      `json:"status"`
	Summary RunSummary  `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// RunSummary contains aggregated simulation results.
type RunSummary struct {
	Years             int      `json:"years"`
	StartAge          int      `json:"start_age"`
	EndAge            int      `json:"end_age"`
	LifetimeTax       float64  `json:"lifetime_tax"`
	LifetimeSpending  float64  `json:"lifetime_spending"`
	TotalConversions  float64  `json:"total_conversions"`
	EndingNetWorth    float64  `json:"ending_net_worth"`
	EndingTaxable     float64  `json:"ending_taxable"`
	EndingDeferred    float64  `json:"ending_deferred"`
	EndingRoth        float64  `json:"ending_roth"`
	InsufficientFunds bool     `json:"insufficient_funds"`
	FirstShortfallAge int      `json:"first_shortfall_age,omitempty"`
	FinalStage        string   `json:"final_stage,omitempty"`
	Stages            []string `json:"stages,omitempty"` // distinct stages in ledger order
}

// LedgerRow represents one year in the simulation ledger.
type LedgerRow struct {
	Year             int     `json:"year"`
	Age              int     `json:"age"`
	Stage            string  `json:"stage"`
	Spending         float64 `json:"spending"`
	SocialSecurity   float64 `json:"social_security"`
	TaxableSS        float64 `json:"taxable_ss"`
	RMD              float64 `json:"rmd"`
	WithdrawTaxable  float64 `json:"withdraw_taxable"`
	WithdrawDeferred float64 `json:"withdraw_deferred"`
	WithdrawRoth     float64 `json:"withdraw_roth"`
	Conversion       float64 `json:"conversion"`
	RealizedGains    float64 `json:"realized_gains"`
	OrdinaryTax      float64 `json:"ordinary_tax"`
	CapGainsTax      float64 `json:"cap_gains_tax"`
	StateTax         float64 `json:"state_tax"`
	TotalTax         float64 `json:"total_tax"`
	BalTaxable       float64 `json:"bal_taxable"`
	BalDeferred      float64 `json:"bal_deferred"`
	BalRoth          float64 `json:"bal_roth"`
	NetWorth         float64 `json:"net_worth"`
	BasisRemaining   float64 `json:"basis_remaining"`
	Shortfall        float64 `json:"shortfall,omitempty"`
	Converged        bool    `json:"converged"`
}

// CompareResponse represents the response from a comparison.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation.
type ComparisonResult struct {
	Name    string     `json:"name"`
	Summary RunSummary `json:"summary"`
}

// SweepResponse ranks conversion-ceiling candidates.
type SweepResponse struct {
	RankedBy string        `json:"ranked_by"`
	Rankings []SweepResult `json:"rankings"`
}

// SweepResult is one ranked conversion policy.
type SweepResult struct {
	Rank              int     `json:"rank"`
	Label             string  `json:"label"`
	TargetRate        float64 `json:"target_rate,omitempty"`
	LifetimeTax       float64 `json:"lifetime_tax"`
	TotalConversions  float64 `json:"total_conversions"`
	EndingNetWorth    float64 `json:"ending_net_worth"`
	EndingRoth        float64 `json:"ending_roth"`
	InsufficientFunds bool    `json:"insufficient_funds"`
}

// RunInfo describes one stored run in listings.
type RunInfo struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	FilingStatus      string    `json:"filing_status"`
	StartAge          int       `json:"start_age"`
	HorizonYears      int       `json:"horizon_years"`
	Strategy          string    `json:"strategy"`
	LifetimeTax       float64   `json:"lifetime_tax"`
	EndingNetWorth    float64   `json:"ending_net_worth"`
	InsufficientFunds bool      `json:"insufficient_funds"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProfileInfo represents one filing-status tax profile in the catalog.
type ProfileInfo struct {
	Status            string        `json:"status"`
	StandardDeduction float64       `json:"standard_deduction"`
	OrdinaryBrackets  []BracketInfo `json:"ordinary_brackets"`
	CapGainsBrackets  []BracketInfo `json:"cap_gains_brackets"`
	SSBaseThreshold   float64       `json:"ss_base_threshold"`
	SSUpperThreshold  float64       `json:"ss_upper_threshold"`
	IRMAATier0        float64       `json:"irmaa_tier_0"`
}

// BracketInfo is one rate step of a schedule.
type BracketInfo struct {
	Rate  float64 `json:"rate"`
	Limit float64 `json:"limit"`
}

// StrategyInfo represents information about a withdrawal strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int", "string"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
