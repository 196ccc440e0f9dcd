package analysis

import (
	"fmt"
	"sort"

	"retirecast/internal/sim"
)

// ConversionOutcome summarizes one full simulation run under a candidate
// conversion policy, for ranking policies against each other.
type ConversionOutcome struct {
	Label      string
	Enabled    bool
	TargetRate float64

	LifetimeTax       float64
	TotalConversions  float64
	EndingNetWorth    float64
	EndingRoth        float64
	InsufficientFunds bool
}

// SweepConversions re-runs the plan once with conversions off and once per
// ordinary bracket rate as the conversion ceiling, returning the outcomes in
// candidate order. Each run starts from the plan's original account state.
func SweepConversions(engine *sim.Engine, plan *sim.Plan) ([]ConversionOutcome, error) {
	candidates := []sim.ConversionPolicy{{Enabled: false}}
	for _, b := range plan.Profile.OrdinaryBrackets {
		candidates = append(candidates, sim.ConversionPolicy{
			Enabled:    true,
			TargetRate: b.Rate,
			IRMAACap:   plan.Conversions.IRMAACap,
		})
	}

	out := make([]ConversionOutcome, 0, len(candidates))
	for _, policy := range candidates {
		variant := *plan
		variant.Conversions = policy

		res, err := engine.Run(&variant)
		if err != nil {
			return nil, fmt.Errorf("sweep candidate %s: %w", sweepLabel(policy), err)
		}

		out = append(out, ConversionOutcome{
			Label:             sweepLabel(policy),
			Enabled:           policy.Enabled,
			TargetRate:        policy.TargetRate,
			LifetimeTax:       res.LifetimeTax,
			TotalConversions:  res.TotalConversions,
			EndingNetWorth:    res.EndingNetWorth,
			EndingRoth:        res.EndBalances.Roth,
			InsufficientFunds: res.InsufficientFunds,
		})
	}
	return out, nil
}

func sweepLabel(policy sim.ConversionPolicy) string {
	if !policy.Enabled {
		return "off"
	}
	return fmt.Sprintf("fill-%.0f%%", policy.TargetRate*100)
}

// RankByEndingNetWorth sorts outcomes descending by ending net worth.
func RankByEndingNetWorth(outcomes []ConversionOutcome) []ConversionOutcome {
	ranked := append([]ConversionOutcome(nil), outcomes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EndingNetWorth > ranked[j].EndingNetWorth
	})
	return ranked
}

// RankByLifetimeTax sorts outcomes ascending by lifetime tax paid.
func RankByLifetimeTax(outcomes []ConversionOutcome) []ConversionOutcome {
	ranked := append([]ConversionOutcome(nil), outcomes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LifetimeTax < ranked[j].LifetimeTax
	})
	return ranked
}
