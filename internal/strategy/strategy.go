package strategy

// Available describes how much each bucket can supply this year, after the
// RMD and any Roth conversion have already been committed.
type Available struct {
	Taxable  float64
	Deferred float64
	Roth     float64
}

// Context is everything a strategy sees when allocating one year's need.
type Context struct {
	YearIdx   int
	Age       int
	Need      float64 // cash still required after RMD and Social Security
	Available Available
}

// Withdrawal is the allocation a strategy decided on. The engine caps each
// component at the corresponding available balance, so strategies may
// over-ask but never over-draw.
type Withdrawal struct {
	Taxable  float64
	Deferred float64
	Roth     float64
}

func (w Withdrawal) Total() float64 {
	return w.Taxable + w.Deferred + w.Roth
}

type Strategy interface {
	Name() string
	Allocate(ctx Context) Withdrawal
}
