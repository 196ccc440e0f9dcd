package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"retirecast/internal/sim"
	"retirecast/internal/tax"

	"gopkg.in/yaml.v3"
)

func writeYAML(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const validScenario = `
name: early-retirement
household:
  filing_status: married-joint
  start_age: 60
  horizon_years: 30
accounts:
  taxable:
    balance: 500000
    growth: 0.05
  tax_deferred:
    balance: 800000
    growth: 0.05
  roth:
    balance: 100000
    growth: 0.06
  basis_fraction: 0.6
spending:
  annual: 80000
  inflation: 0.025
social_security:
  start_age: 67
  annual_benefit: 42000
  cola: 0.02
conversions:
  enabled: true
  target_rate: 0.12
strategy:
  name: taxable-first
state_tax_rate: 0.05
turnover_rate: 0.02
`

func TestLoad_ValidScenario(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "scenario.yaml", validScenario)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "early-retirement" {
		t.Errorf("Name = %q", s.Name)
	}

	plan, err := s.ToPlan(tax.DefaultProfiles())
	if err != nil {
		t.Fatalf("ToPlan: %v", err)
	}
	if plan.Profile.Status != tax.StatusMarriedJoint {
		t.Errorf("profile status = %q", plan.Profile.Status)
	}
	if plan.StartAge != 60 || plan.HorizonYears != 30 {
		t.Errorf("ages = %d+%d, want 60+30", plan.StartAge, plan.HorizonYears)
	}
	if plan.Accounts.State.Basis != 0.6*500000 {
		t.Errorf("Basis = %.2f, want 300000", plan.Accounts.State.Basis)
	}
	if !plan.Conversions.Enabled || !plan.Conversions.IRMAACap {
		t.Errorf("conversions = %+v, want enabled with the IRMAA cap on", plan.Conversions)
	}
	if plan.Strategy.Name() != "taxable-first" {
		t.Errorf("strategy = %q", plan.Strategy.Name())
	}
	if plan.SocialSecurity.AnnualBenefit != 42000 {
		t.Errorf("benefit = %.2f", plan.SocialSecurity.AnnualBenefit)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "bad.yaml", "household: [not: a: mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("want error for malformed yaml")
	}
}

func TestLoad_RejectsUnknownStatus(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "s.yaml", `
household:
  filing_status: widowed
  start_age: 60
  horizon_years: 10
spending:
  annual: 1000
`)
	if _, err := Load(path); err == nil {
		t.Fatal("want error for unknown filing status")
	}
}

func TestLoad_RejectsNegativeSpending(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "s.yaml", `
household:
  filing_status: single
  start_age: 60
  horizon_years: 10
spending:
  annual: -5
`)
	_, err := Load(path)
	if !errors.Is(err, sim.ErrNegativeInput) {
		t.Fatalf("err = %v, want ErrNegativeInput", err)
	}
}

func TestLoad_ProfileFileIndirection(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "profile.yaml", `
profile:
  standard_deduction: 40000
  irmaa_tier_0: 250000
`)
	path := writeYAML(t, dir, "s.yaml", `
profile_file: profile.yaml
profile:
  irmaa_tier_0: 300000
household:
  filing_status: married-joint
  start_age: 60
  horizon_years: 5
accounts:
  taxable:
    balance: 100000
spending:
  annual: 10000
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, err := s.ToPlan(tax.DefaultProfiles())
	if err != nil {
		t.Fatal(err)
	}
	if plan.Profile.StandardDeduction != 40000 {
		t.Errorf("deduction = %.2f, want 40000 from the profile file", plan.Profile.StandardDeduction)
	}
	// Inline overrides win over the profile file.
	if plan.Profile.IRMAATier0 != 300000 {
		t.Errorf("IRMAA = %.2f, want inline 300000", plan.Profile.IRMAATier0)
	}
}

func TestApplyTo_OverridesLimitsPositionally(t *testing.T) {
	base := tax.ProfileFor(tax.StatusSingle)
	pc := ProfileConfig{BracketLimits: []float64{0, 60000}}
	out := pc.ApplyTo(base)

	if out.OrdinaryBrackets[0].Limit != base.OrdinaryBrackets[0].Limit {
		t.Error("zero entry should keep the base limit")
	}
	if out.OrdinaryBrackets[1].Limit != 60000 {
		t.Errorf("limit = %.2f, want 60000", out.OrdinaryBrackets[1].Limit)
	}
	if out.OrdinaryBrackets[1].Rate != base.OrdinaryBrackets[1].Rate {
		t.Error("rates must be preserved")
	}
	// The base profile must not be touched.
	if base.OrdinaryBrackets[1].Limit == 60000 {
		t.Error("ApplyTo mutated the base profile")
	}
}

func TestMergeScenario_OverlaysNonZeroFields(t *testing.T) {
	var base Scenario
	if err := yaml.Unmarshal([]byte(validScenario), &base); err != nil {
		t.Fatal(err)
	}

	merged := MergeScenario(base, Scenario{
		Name:     "variant",
		Spending: SpendingConfig{Annual: 90000},
		Strategy: StrategyConfig{Name: "pro-rata"},
	})
	if merged.Name != "variant" {
		t.Errorf("Name = %q", merged.Name)
	}
	if merged.Spending.Annual != 90000 {
		t.Errorf("Annual = %.2f, want 90000", merged.Spending.Annual)
	}
	if merged.Strategy.Name != "pro-rata" {
		t.Errorf("Strategy = %q", merged.Strategy.Name)
	}
	// Untouched fields carry over from the base.
	if merged.Household.StartAge != 60 {
		t.Errorf("StartAge = %d, want 60", merged.Household.StartAge)
	}
	if merged.Accounts.Taxable.Balance != 500000 {
		t.Errorf("taxable balance = %.2f, want 500000", merged.Accounts.Taxable.Balance)
	}
}

func TestValidate_RequiresStartAge(t *testing.T) {
	s := Scenario{
		Household: HouseholdConfig{FilingStatus: "single", HorizonYears: 10},
		Spending:  SpendingConfig{Annual: 1000},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("want error for missing start age")
	}
}
