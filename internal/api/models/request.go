package models

import "retirecast/internal/config"

// SimulateRequest represents the request body for running a simulation.
type SimulateRequest struct {
	Scenario config.Scenario `json:"scenario" binding:"required"`
	Options  SimulateOptions `json:"options,omitempty"`
}

// SimulateOptions contains optional simulation parameters.
type SimulateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
	Save          bool `json:"save,omitempty"`           // persist to the run store
}

// CompareRequest represents a request to compare scenario variations.
type CompareRequest struct {
	BaseScenario config.Scenario `json:"base_scenario" binding:"required"`
	Variations   []Variation     `json:"variations" binding:"required"`
}

// Variation defines one scenario variation, merged over the base.
type Variation struct {
	Name     string          `json:"name" binding:"required"`
	Scenario config.Scenario `json:"scenario"`
}

// SweepRequest represents a request to sweep conversion ceilings.
type SweepRequest struct {
	Scenario config.Scenario `json:"scenario" binding:"required"`
	// RankBy is "net_worth" (default) or "lifetime_tax".
	RankBy string `json:"rank_by,omitempty"`
}
