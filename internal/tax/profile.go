package tax

import (
	"errors"
	"fmt"
	"math"
)

// FilingStatus identifies the federal filing status a profile applies to.
type FilingStatus string

const (
	StatusSingle          FilingStatus = "single"
	StatusMarriedJoint    FilingStatus = "married-joint"
	StatusMarriedSeparate FilingStatus = "married-separate"
	StatusHeadOfHousehold FilingStatus = "head-of-household"
)

// Statuses lists every supported filing status, in catalog order.
var Statuses = []FilingStatus{
	StatusSingle,
	StatusMarriedJoint,
	StatusMarriedSeparate,
	StatusHeadOfHousehold,
}

// Bracket is one step of a progressive rate schedule.
// Limit is the cumulative taxable income covered through this bracket;
// income above the final bracket's Limit is taxed at the final Rate, so a
// schedule always covers [0, inf).
type Bracket struct {
	Rate  float64
	Limit float64
}

// ErrInvalidProfile is returned when a profile's bracket tables are malformed.
// It is fatal: nothing downstream runs with a profile that fails validation.
var ErrInvalidProfile = errors.New("invalid tax profile")

// Profile holds the tax parameters for one filing status. It is immutable
// configuration: the engine receives a Profile explicitly and never mutates
// it, deriving inflation-adjusted copies per year via Indexed.
type Profile struct {
	Status            FilingStatus
	StandardDeduction float64

	// OrdinaryBrackets taxes ordinary income; CapGainsBrackets taxes
	// long-term gains stacked on top of ordinary taxable income.
	OrdinaryBrackets []Bracket
	CapGainsBrackets []Bracket

	// Provisional-income thresholds for Social Security taxability.
	// These are fixed in law and are not inflation-indexed.
	SSBaseThreshold  float64
	SSUpperThreshold float64

	// IRMAATier0 is the MAGI ceiling below which no Medicare premium
	// surcharge applies; used to cap Roth conversions.
	IRMAATier0 float64
}

// Validate checks the bracket tables and threshold amounts.
// All failures wrap ErrInvalidProfile.
func (p Profile) Validate() error {
	if err := validateBrackets(p.OrdinaryBrackets); err != nil {
		return fmt.Errorf("%w: ordinary brackets: %v", ErrInvalidProfile, err)
	}
	if err := validateBrackets(p.CapGainsBrackets); err != nil {
		return fmt.Errorf("%w: capital gains brackets: %v", ErrInvalidProfile, err)
	}
	if p.StandardDeduction < 0 {
		return fmt.Errorf("%w: standard deduction must be >= 0", ErrInvalidProfile)
	}
	if p.SSBaseThreshold < 0 || p.SSUpperThreshold < p.SSBaseThreshold {
		return fmt.Errorf("%w: SS thresholds must satisfy 0 <= base <= upper", ErrInvalidProfile)
	}
	if p.IRMAATier0 < 0 {
		return fmt.Errorf("%w: IRMAA tier-0 threshold must be >= 0", ErrInvalidProfile)
	}
	return nil
}

func validateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return errors.New("at least one bracket required")
	}
	prev := 0.0
	for i, b := range brackets {
		if b.Rate < 0 || b.Rate >= 1 {
			return fmt.Errorf("bracket %d rate %v out of [0,1)", i, b.Rate)
		}
		if b.Limit <= prev {
			return fmt.Errorf("bracket %d limit %v not above previous limit %v", i, b.Limit, prev)
		}
		prev = b.Limit
	}
	return nil
}

// Indexed returns a copy of the profile adjusted yearsAhead years into the
// future. Bracket limits, the standard deduction, and capital-gains tier
// limits grow with inflation; the IRMAA threshold tracks the Social Security
// COLA. The SS provisional-income thresholds are never indexed.
func (p Profile) Indexed(yearsAhead int, inflation, cola float64) Profile {
	if yearsAhead <= 0 {
		return p
	}
	infl := math.Pow(1+inflation, float64(yearsAhead))
	out := p
	out.OrdinaryBrackets = scaleBrackets(p.OrdinaryBrackets, infl)
	out.CapGainsBrackets = scaleBrackets(p.CapGainsBrackets, infl)
	out.StandardDeduction = p.StandardDeduction * infl
	out.IRMAATier0 = p.IRMAATier0 * math.Pow(1+cola, float64(yearsAhead))
	return out
}

func scaleBrackets(brackets []Bracket, factor float64) []Bracket {
	out := make([]Bracket, len(brackets))
	for i, b := range brackets {
		out[i] = Bracket{Rate: b.Rate, Limit: b.Limit * factor}
	}
	return out
}

// BracketCeiling returns the cumulative limit of the bracket taxed at rate,
// or the second bracket's limit when no bracket matches (single-bracket
// schedules fall back to the only limit available).
func (p Profile) BracketCeiling(rate float64) float64 {
	for _, b := range p.OrdinaryBrackets {
		if math.Abs(b.Rate-rate) < 1e-9 {
			return b.Limit
		}
	}
	if len(p.OrdinaryBrackets) > 1 {
		return p.OrdinaryBrackets[1].Limit
	}
	return p.OrdinaryBrackets[len(p.OrdinaryBrackets)-1].Limit
}

// DefaultProfiles returns the built-in per-status parameter tables.
// Callers get a fresh map each time so overrides never leak between runs.
func DefaultProfiles() map[FilingStatus]Profile {
	return map[FilingStatus]Profile{
		StatusMarriedJoint: {
			Status:            StatusMarriedJoint,
			StandardDeduction: 35500,
			OrdinaryBrackets: []Bracket{
				{Rate: 0.10, Limit: 24800},
				{Rate: 0.12, Limit: 100800},
				{Rate: 0.22, Limit: 211100},
				{Rate: 0.24, Limit: 403550},
			},
			CapGainsBrackets: []Bracket{
				{Rate: 0.00, Limit: 94050},
				{Rate: 0.15, Limit: 583750},
				{Rate: 0.20, Limit: 10_000_000},
			},
			SSBaseThreshold:  32000,
			SSUpperThreshold: 44000,
			IRMAATier0:       218000,
		},
		StatusHeadOfHousehold: {
			Status:            StatusHeadOfHousehold,
			StandardDeduction: 26200,
			OrdinaryBrackets: []Bracket{
				{Rate: 0.10, Limit: 17700},
				{Rate: 0.12, Limit: 67450},
				{Rate: 0.22, Limit: 105700},
				{Rate: 0.24, Limit: 201750},
			},
			CapGainsBrackets: []Bracket{
				{Rate: 0.00, Limit: 63000},
				{Rate: 0.15, Limit: 551350},
				{Rate: 0.20, Limit: 10_000_000},
			},
			SSBaseThreshold:  25000,
			SSUpperThreshold: 34000,
			IRMAATier0:       109000,
		},
		StatusMarriedSeparate: {
			Status:            StatusMarriedSeparate,
			StandardDeduction: 17750,
			OrdinaryBrackets: []Bracket{
				{Rate: 0.10, Limit: 12400},
				{Rate: 0.12, Limit: 50400},
				{Rate: 0.22, Limit: 105700},
				{Rate: 0.24, Limit: 201775},
			},
			CapGainsBrackets: []Bracket{
				{Rate: 0.00, Limit: 47025},
				{Rate: 0.15, Limit: 291850},
				{Rate: 0.20, Limit: 10_000_000},
			},
			// MFS benefits are 85% taxable regardless of provisional income,
			// so the thresholds are effectively unused.
			SSBaseThreshold:  0,
			SSUpperThreshold: 0,
			IRMAATier0:       109000,
		},
		StatusSingle: {
			Status:            StatusSingle,
			StandardDeduction: 18150,
			OrdinaryBrackets: []Bracket{
				{Rate: 0.10, Limit: 12400},
				{Rate: 0.12, Limit: 50400},
				{Rate: 0.22, Limit: 105700},
				{Rate: 0.24, Limit: 255225},
			},
			CapGainsBrackets: []Bracket{
				{Rate: 0.00, Limit: 47025},
				{Rate: 0.15, Limit: 518900},
				{Rate: 0.20, Limit: 10_000_000},
			},
			SSBaseThreshold:  25000,
			SSUpperThreshold: 34000,
			IRMAATier0:       109000,
		},
	}
}

// ProfileFor returns the built-in profile for a status, defaulting to single
// when the status is unknown.
func ProfileFor(status FilingStatus) Profile {
	profiles := DefaultProfiles()
	if p, ok := profiles[status]; ok {
		return p
	}
	return profiles[StatusSingle]
}
