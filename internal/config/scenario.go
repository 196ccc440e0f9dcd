package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"retirecast/internal/model"
	"retirecast/internal/sim"
	"retirecast/internal/strategy"
	"retirecast/internal/tax"

	"gopkg.in/yaml.v3"
)

// Scenario is the on-disk configuration shape (YAML). The same structs bind
// JSON request bodies in the API, so every field carries both tags.
type Scenario struct {
	Name string `yaml:"name" json:"name,omitempty"`

	// Optional: load profile overrides from a separate YAML (e.g.
	// examples/profiles/*.yaml). Inline profile fields override the file.
	ProfileFile string          `yaml:"profile_file" json:"profile_file,omitempty"`
	Profile     ProfileConfig   `yaml:"profile" json:"profile,omitempty"`
	Household   HouseholdConfig `yaml:"household" json:"household"`
	Accounts    AccountsConfig  `yaml:"accounts" json:"accounts"`
	Spending    SpendingConfig  `yaml:"spending" json:"spending"`

	SocialSecurity SocialSecurityConfig `yaml:"social_security" json:"social_security,omitempty"`
	Conversions    ConversionsConfig    `yaml:"conversions" json:"conversions,omitempty"`
	Strategy       StrategyConfig       `yaml:"strategy" json:"strategy,omitempty"`

	StateTaxRate float64 `yaml:"state_tax_rate" json:"state_tax_rate,omitempty"`
	TurnoverRate float64 `yaml:"turnover_rate" json:"turnover_rate,omitempty"`
}

type HouseholdConfig struct {
	FilingStatus string `yaml:"filing_status" json:"filing_status"`
	StartAge     int    `yaml:"start_age" json:"start_age"`
	HorizonYears int    `yaml:"horizon_years" json:"horizon_years"`
}

type AccountConfig struct {
	Balance float64 `yaml:"balance" json:"balance"`
	Growth  float64 `yaml:"growth" json:"growth"`
}

type AccountsConfig struct {
	Taxable     AccountConfig `yaml:"taxable" json:"taxable"`
	TaxDeferred AccountConfig `yaml:"tax_deferred" json:"tax_deferred"`
	Roth        AccountConfig `yaml:"roth" json:"roth"`
	// BasisFraction is the share of the taxable balance that is cost basis.
	BasisFraction float64 `yaml:"basis_fraction" json:"basis_fraction,omitempty"`
}

type SpendingConfig struct {
	Annual    float64 `yaml:"annual" json:"annual"`
	Inflation float64 `yaml:"inflation" json:"inflation,omitempty"`
}

type SocialSecurityConfig struct {
	StartAge      int     `yaml:"start_age" json:"start_age,omitempty"`
	AnnualBenefit float64 `yaml:"annual_benefit" json:"annual_benefit,omitempty"`
	COLA          float64 `yaml:"cola" json:"cola,omitempty"`
}

type ConversionsConfig struct {
	Enabled    bool    `yaml:"enabled" json:"enabled,omitempty"`
	TargetRate float64 `yaml:"target_rate" json:"target_rate,omitempty"`
	// NoIRMAACap disables the MAGI ceiling on conversions. The zero value
	// keeps the cap on, matching the safer default.
	NoIRMAACap bool `yaml:"no_irmaa_cap" json:"no_irmaa_cap,omitempty"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name" json:"name,omitempty"`
	Params map[string]any `yaml:"params" json:"params,omitempty"`
}

// ProfileConfig overrides fields of the built-in profile for the scenario's
// filing status. Zero-valued fields keep the defaults.
type ProfileConfig struct {
	StandardDeduction float64   `yaml:"standard_deduction" json:"standard_deduction,omitempty"`
	BracketLimits     []float64 `yaml:"bracket_limits" json:"bracket_limits,omitempty"`
	CapGainsLimits    []float64 `yaml:"cap_gains_limits" json:"cap_gains_limits,omitempty"`
	SSBaseThreshold   float64   `yaml:"ss_base_threshold" json:"ss_base_threshold,omitempty"`
	SSUpperThreshold  float64   `yaml:"ss_upper_threshold" json:"ss_upper_threshold,omitempty"`
	IRMAATier0        float64   `yaml:"irmaa_tier_0" json:"irmaa_tier_0,omitempty"`
}

func Load(path string) (*Scenario, error) {
	s, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadUnchecked loads and merges a scenario, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	// If profile_file is set, load it and merge in any explicit overrides
	// from the inline profile block.
	if s.ProfileFile != "" {
		profilePath := s.ProfileFile
		if !filepath.IsAbs(profilePath) {
			// Prefer paths relative to the scenario file; fall back to the
			// given path relative to cwd.
			cand := filepath.Join(filepath.Dir(path), profilePath)
			if _, err := os.Stat(cand); err == nil {
				profilePath = cand
			}
		}
		loaded, err := loadProfileFile(profilePath)
		if err != nil {
			return nil, err
		}
		s.Profile = MergeProfile(loaded, s.Profile)
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("scenario is nil")
	}
	if s.Household.HorizonYears < 0 {
		return errors.New("household.horizon_years must be >= 0")
	}
	if s.Household.StartAge <= 0 {
		return errors.New("household.start_age is required")
	}
	// Validate the rest by constructing the plan it would run.
	plan, err := s.ToPlan(tax.DefaultProfiles())
	if err != nil {
		return err
	}
	return plan.Validate()
}

// ToPlan resolves the scenario against a profile table into a runnable plan.
func (s *Scenario) ToPlan(profiles map[tax.FilingStatus]tax.Profile) (*sim.Plan, error) {
	status := tax.FilingStatus(s.Household.FilingStatus)
	profile, ok := profiles[status]
	if !ok {
		return nil, fmt.Errorf("unknown filing status %q", s.Household.FilingStatus)
	}
	profile = s.Profile.ApplyTo(profile)

	strat, err := strategy.FromConfig(s.Strategy.Name, s.Strategy.Params)
	if err != nil {
		return nil, err
	}

	accounts := model.Accounts{
		Params: model.AccountParams{
			GrowthTaxable:  s.Accounts.Taxable.Growth,
			GrowthDeferred: s.Accounts.TaxDeferred.Growth,
			GrowthRoth:     s.Accounts.Roth.Growth,
		},
		State: model.AccountState{
			Taxable:  s.Accounts.Taxable.Balance,
			Deferred: s.Accounts.TaxDeferred.Balance,
			Roth:     s.Accounts.Roth.Balance,
			Basis:    s.Accounts.BasisFraction * s.Accounts.Taxable.Balance,
		},
	}

	return &sim.Plan{
		Profile:       profile,
		Accounts:      accounts,
		StartAge:      s.Household.StartAge,
		HorizonYears:  s.Household.HorizonYears,
		SpendingBase:  s.Spending.Annual,
		InflationRate: s.Spending.Inflation,
		StateTaxRate:  s.StateTaxRate,
		TurnoverRate:  s.TurnoverRate,
		SocialSecurity: sim.SocialSecurityPlan{
			StartAge:      s.SocialSecurity.StartAge,
			AnnualBenefit: s.SocialSecurity.AnnualBenefit,
			COLA:          s.SocialSecurity.COLA,
		},
		Conversions: sim.ConversionPolicy{
			Enabled:    s.Conversions.Enabled,
			TargetRate: s.Conversions.TargetRate,
			IRMAACap:   !s.Conversions.NoIRMAACap,
		},
		Strategy: strat,
	}, nil
}

// ApplyTo overlays the non-zero override fields onto a base profile.
func (pc ProfileConfig) ApplyTo(base tax.Profile) tax.Profile {
	out := base
	if pc.StandardDeduction != 0 {
		out.StandardDeduction = pc.StandardDeduction
	}
	if len(pc.BracketLimits) > 0 {
		out.OrdinaryBrackets = overrideLimits(base.OrdinaryBrackets, pc.BracketLimits)
	}
	if len(pc.CapGainsLimits) > 0 {
		out.CapGainsBrackets = overrideLimits(base.CapGainsBrackets, pc.CapGainsLimits)
	}
	if pc.SSBaseThreshold != 0 {
		out.SSBaseThreshold = pc.SSBaseThreshold
	}
	if pc.SSUpperThreshold != 0 {
		out.SSUpperThreshold = pc.SSUpperThreshold
	}
	if pc.IRMAATier0 != 0 {
		out.IRMAATier0 = pc.IRMAATier0
	}
	return out
}

// overrideLimits keeps the base rates and replaces limits positionally.
// Extra limits beyond the base schedule are ignored.
func overrideLimits(base []tax.Bracket, limits []float64) []tax.Bracket {
	out := make([]tax.Bracket, len(base))
	copy(out, base)
	for i := range out {
		if i < len(limits) && limits[i] != 0 {
			out[i].Limit = limits[i]
		}
	}
	return out
}

type profileFileWrapper struct {
	Profile ProfileConfig `yaml:"profile"`
}

func loadProfileFile(path string) (ProfileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProfileConfig{}, err
	}
	var w profileFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ProfileConfig{}, err
	}
	return w.Profile, nil
}

// MergeProfile overlays non-zero fields from override onto base. Used when
// loading a profile file and then applying inline or request overrides.
func MergeProfile(base, override ProfileConfig) ProfileConfig {
	out := base
	if override.StandardDeduction != 0 {
		out.StandardDeduction = override.StandardDeduction
	}
	if len(override.BracketLimits) > 0 {
		out.BracketLimits = override.BracketLimits
	}
	if len(override.CapGainsLimits) > 0 {
		out.CapGainsLimits = override.CapGainsLimits
	}
	if override.SSBaseThreshold != 0 {
		out.SSBaseThreshold = override.SSBaseThreshold
	}
	if override.SSUpperThreshold != 0 {
		out.SSUpperThreshold = override.SSUpperThreshold
	}
	if override.IRMAATier0 != 0 {
		out.IRMAATier0 = override.IRMAATier0
	}
	return out
}

// MergeScenario overlays non-zero fields from override onto base. The API's
// compare endpoint uses it to derive variations from a base scenario.
func MergeScenario(base, override Scenario) Scenario {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.ProfileFile != "" {
		out.ProfileFile = override.ProfileFile
	}
	out.Profile = MergeProfile(base.Profile, override.Profile)
	if override.Household.FilingStatus != "" {
		out.Household.FilingStatus = override.Household.FilingStatus
	}
	if override.Household.StartAge != 0 {
		out.Household.StartAge = override.Household.StartAge
	}
	if override.Household.HorizonYears != 0 {
		out.Household.HorizonYears = override.Household.HorizonYears
	}
	if override.Accounts.Taxable.Balance != 0 || override.Accounts.Taxable.Growth != 0 {
		out.Accounts.Taxable = override.Accounts.Taxable
	}
	if override.Accounts.TaxDeferred.Balance != 0 || override.Accounts.TaxDeferred.Growth != 0 {
		out.Accounts.TaxDeferred = override.Accounts.TaxDeferred
	}
	if override.Accounts.Roth.Balance != 0 || override.Accounts.Roth.Growth != 0 {
		out.Accounts.Roth = override.Accounts.Roth
	}
	if override.Accounts.BasisFraction != 0 {
		out.Accounts.BasisFraction = override.Accounts.BasisFraction
	}
	if override.Spending.Annual != 0 {
		out.Spending.Annual = override.Spending.Annual
	}
	if override.Spending.Inflation != 0 {
		out.Spending.Inflation = override.Spending.Inflation
	}
	if override.SocialSecurity.StartAge != 0 || override.SocialSecurity.AnnualBenefit != 0 {
		out.SocialSecurity = override.SocialSecurity
	}
	if override.Conversions.Enabled || override.Conversions.TargetRate != 0 {
		out.Conversions = override.Conversions
	}
	if override.Strategy.Name != "" {
		out.Strategy = override.Strategy
	}
	if override.StateTaxRate != 0 {
		out.StateTaxRate = override.StateTaxRate
	}
	if override.TurnoverRate != 0 {
		out.TurnoverRate = override.TurnoverRate
	}
	return out
}
