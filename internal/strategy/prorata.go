package strategy

import "math"

// ProRataStrategy spreads the need across buckets in proportion to their
// current balances, so all three deplete on roughly the same schedule.
// Any residual left by an empty bucket spills into the others by balance
// share.
type ProRataStrategy struct{}

func (s *ProRataStrategy) Name() string { return "pro-rata" }

func (s *ProRataStrategy) Allocate(ctx Context) Withdrawal {
	var w Withdrawal
	remaining := math.Max(0, ctx.Need)
	avail := ctx.Available

	// Two passes: the first splits proportionally, the second re-spreads
	// whatever a capped bucket could not supply.
	for pass := 0; pass < 2 && remaining > 1e-9; pass++ {
		capTaxable := avail.Taxable - w.Taxable
		capDeferred := avail.Deferred - w.Deferred
		capRoth := avail.Roth - w.Roth
		total := capTaxable + capDeferred + capRoth
		if total <= 0 {
			break
		}
		take := remaining

		t := math.Min(capTaxable, take*capTaxable/total)
		d := math.Min(capDeferred, take*capDeferred/total)
		r := math.Min(capRoth, take*capRoth/total)

		w.Taxable += t
		w.Deferred += d
		w.Roth += r
		remaining -= t + d + r
	}
	return w
}
