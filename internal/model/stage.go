package model

// Stage is a human-friendly label for where a retirement year sits.
// Keep these values stable; they appear in CSV output and the run store.
type Stage string

const (
	StageDepleted         Stage = "Depleted"
	StageRothFunded       Stage = "Roth-Funded"
	StageConversion       Stage = "Conversion"
	StageDeferredRunOut   Stage = "401k-Run-Out"
	StageSSOnly           Stage = "SS-Only"
	StageDeferredDrawdown Stage = "401k-Drawdown"
	StageTaxableDrawdown  Stage = "Taxable-Drawdown"
	StageRothDrawdown     Stage = "Roth-Drawdown"
	StageGolden           Stage = "Golden"
	StageSustainable      Stage = "Sustainable"
)

// StageInputs carries everything the classifier looks at for one year.
type StageInputs struct {
	YearIdx          int
	Balances         AccountState
	WithdrawTaxable  float64
	WithdrawDeferred float64
	WithdrawRoth     float64
	Conversion       float64
	SocialSecurity   float64
	Spending         float64
	InitialNetWorth  float64
}

// ClassifyStage labels a simulated year. Thresholds use a one-dollar
// epsilon so float dust never flips a bucket between "empty" and "funded".
func ClassifyStage(in StageInputs) Stage {
	const small = 1.0
	b := in.Balances
	total := b.Taxable + b.Deferred + b.Roth

	switch {
	case total < small:
		return StageDepleted
	case b.Deferred <= small && b.Taxable <= small && b.Roth > small:
		return StageRothFunded
	case in.Conversion > maxf(1000.0, 0.005*in.InitialNetWorth):
		return StageConversion
	case b.Deferred <= small && b.Taxable > small:
		return StageDeferredRunOut
	case in.SocialSecurity >= in.Spending &&
		in.WithdrawDeferred == 0 && in.WithdrawTaxable == 0 && in.WithdrawRoth == 0:
		return StageSSOnly
	case in.WithdrawDeferred > maxf(in.WithdrawTaxable, in.WithdrawRoth):
		return StageDeferredDrawdown
	case in.WithdrawTaxable > maxf(in.WithdrawDeferred, in.WithdrawRoth):
		return StageTaxableDrawdown
	case in.WithdrawRoth > maxf(in.WithdrawDeferred, in.WithdrawTaxable):
		return StageRothDrawdown
	case in.YearIdx <= 5 && total >= 0.5*in.InitialNetWorth:
		return StageGolden
	default:
		return StageSustainable
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
