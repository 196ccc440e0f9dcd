package analysis

import (
	"testing"

	"retirecast/internal/model"
	"retirecast/internal/sim"
	"retirecast/internal/strategy"
	"retirecast/internal/tax"
)

func sweepPlan() *sim.Plan {
	return &sim.Plan{
		Profile: tax.ProfileFor(tax.StatusMarriedJoint),
		Accounts: model.Accounts{
			State: model.AccountState{Taxable: 300000, Deferred: 600000, Basis: 300000},
		},
		StartAge:     65,
		HorizonYears: 10,
		SpendingBase: 50000,
		Strategy:     strategy.TaxableFirst(),
	}
}

func TestSweepConversions_OneCandidatePerBracket(t *testing.T) {
	plan := sweepPlan()
	outcomes, err := SweepConversions(sim.New(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 1 + len(plan.Profile.OrdinaryBrackets)
	if len(outcomes) != want {
		t.Fatalf("outcomes = %d, want %d", len(outcomes), want)
	}
	if outcomes[0].Label != "off" || outcomes[0].Enabled {
		t.Errorf("first outcome = %+v, want conversions off", outcomes[0])
	}
	if outcomes[1].Label != "fill-10%" {
		t.Errorf("second label = %q, want fill-10%%", outcomes[1].Label)
	}
	for i, o := range outcomes[1:] {
		if !o.Enabled {
			t.Errorf("outcome %d: Enabled = false", i+1)
		}
	}
	// The off candidate converts nothing; bracket-filling candidates do.
	if outcomes[0].TotalConversions != 0 {
		t.Errorf("off candidate converted %.2f", outcomes[0].TotalConversions)
	}
	if outcomes[2].TotalConversions <= 0 {
		t.Errorf("fill-12%% candidate converted nothing")
	}
}

func TestSweepConversions_DoesNotMutatePlan(t *testing.T) {
	plan := sweepPlan()
	if _, err := SweepConversions(sim.New(), plan); err != nil {
		t.Fatal(err)
	}
	if plan.Conversions.Enabled {
		t.Error("plan conversion policy mutated")
	}
	if plan.Accounts.State.Deferred != 600000 {
		t.Errorf("plan deferred mutated to %.2f", plan.Accounts.State.Deferred)
	}
}

func TestRankByEndingNetWorth(t *testing.T) {
	outcomes := []ConversionOutcome{
		{Label: "a", EndingNetWorth: 100},
		{Label: "b", EndingNetWorth: 300},
		{Label: "c", EndingNetWorth: 200},
	}
	ranked := RankByEndingNetWorth(outcomes)
	if ranked[0].Label != "b" || ranked[1].Label != "c" || ranked[2].Label != "a" {
		t.Errorf("order = %q %q %q, want b c a", ranked[0].Label, ranked[1].Label, ranked[2].Label)
	}
	// The input order is preserved.
	if outcomes[0].Label != "a" {
		t.Error("ranking mutated its input")
	}
}

func TestRankByLifetimeTax(t *testing.T) {
	outcomes := []ConversionOutcome{
		{Label: "a", LifetimeTax: 5000},
		{Label: "b", LifetimeTax: 1000},
	}
	ranked := RankByLifetimeTax(outcomes)
	if ranked[0].Label != "b" {
		t.Errorf("cheapest = %q, want b", ranked[0].Label)
	}
}
