package strategy

import (
	"fmt"
	"math"
)

// Bucket identifies one of the three account types in a withdrawal order.
type Bucket string

const (
	BucketTaxable  Bucket = "taxable"
	BucketDeferred Bucket = "deferred"
	BucketRoth     Bucket = "roth"
)

// OrderedStrategy drains buckets in a fixed sequence, taking as much as each
// bucket can supply before moving on. The default retirement ordering is
// taxable first, then tax-deferred, then Roth.
type OrderedStrategy struct {
	StrategyName string
	Order        []Bucket
}

// TaxableFirst is the default withdrawal ordering.
func TaxableFirst() *OrderedStrategy {
	return &OrderedStrategy{
		StrategyName: "taxable-first",
		Order:        []Bucket{BucketTaxable, BucketDeferred, BucketRoth},
	}
}

// DeferredFirst drains tax-deferred money ahead of taxable, trading current
// ordinary tax for smaller RMDs later.
func DeferredFirst() *OrderedStrategy {
	return &OrderedStrategy{
		StrategyName: "deferred-first",
		Order:        []Bucket{BucketDeferred, BucketTaxable, BucketRoth},
	}
}

func (s *OrderedStrategy) Name() string { return s.StrategyName }

func (s *OrderedStrategy) Allocate(ctx Context) Withdrawal {
	var w Withdrawal
	remaining := math.Max(0, ctx.Need)
	for _, b := range s.Order {
		if remaining <= 0 {
			break
		}
		switch b {
		case BucketTaxable:
			w.Taxable = math.Min(remaining, ctx.Available.Taxable)
			remaining -= w.Taxable
		case BucketDeferred:
			w.Deferred = math.Min(remaining, ctx.Available.Deferred)
			remaining -= w.Deferred
		case BucketRoth:
			w.Roth = math.Min(remaining, ctx.Available.Roth)
			remaining -= w.Roth
		}
	}
	return w
}

func validOrder(order []Bucket) error {
	seen := map[Bucket]bool{}
	for _, b := range order {
		switch b {
		case BucketTaxable, BucketDeferred, BucketRoth:
		default:
			return fmt.Errorf("unknown bucket %q", b)
		}
		if seen[b] {
			return fmt.Errorf("bucket %q repeated", b)
		}
		seen[b] = true
	}
	if len(order) == 0 {
		return fmt.Errorf("empty withdrawal order")
	}
	return nil
}
