package model

import "testing"

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		name string
		in   StageInputs
		want Stage
	}{
		{
			name: "depleted",
			in:   StageInputs{Balances: AccountState{}},
			want: StageDepleted,
		},
		{
			name: "roth funded when only roth remains",
			in:   StageInputs{Balances: AccountState{Roth: 50000}},
			want: StageRothFunded,
		},
		{
			name: "conversion dominates a year with a large conversion",
			in: StageInputs{
				Balances:        AccountState{Taxable: 100000, Deferred: 400000},
				Conversion:      50000,
				InitialNetWorth: 500000,
			},
			want: StageConversion,
		},
		{
			name: "tiny conversion does not flip the stage",
			in: StageInputs{
				Balances:        AccountState{Taxable: 100000, Deferred: 400000},
				Conversion:      500,
				WithdrawTaxable: 30000,
				InitialNetWorth: 500000,
			},
			want: StageTaxableDrawdown,
		},
		{
			name: "deferred run out",
			in: StageInputs{
				Balances:        AccountState{Taxable: 100000},
				WithdrawTaxable: 20000,
			},
			want: StageDeferredRunOut,
		},
		{
			name: "social security covers everything",
			in: StageInputs{
				Balances:       AccountState{Taxable: 100000, Deferred: 200000},
				SocialSecurity: 40000,
				Spending:       35000,
			},
			want: StageSSOnly,
		},
		{
			name: "deferred drawdown",
			in: StageInputs{
				Balances:         AccountState{Taxable: 10000, Deferred: 300000},
				WithdrawDeferred: 25000,
				WithdrawTaxable:  5000,
			},
			want: StageDeferredDrawdown,
		},
		{
			name: "roth drawdown",
			in: StageInputs{
				Balances:     AccountState{Taxable: 10000, Deferred: 10000, Roth: 300000},
				WithdrawRoth: 25000,
			},
			want: StageRothDrawdown,
		},
		{
			name: "golden years early with most of the portfolio intact",
			in: StageInputs{
				YearIdx:         2,
				Balances:        AccountState{Taxable: 300000, Deferred: 300000},
				SocialSecurity:  20000,
				Spending:        30000,
				WithdrawRoth:    1,
				WithdrawTaxable: 1,
				InitialNetWorth: 700000,
			},
			want: StageGolden,
		},
		{
			name: "sustainable fallback",
			in: StageInputs{
				YearIdx:         20,
				Balances:        AccountState{Taxable: 100000, Deferred: 100000},
				SocialSecurity:  20000,
				Spending:        30000,
				WithdrawRoth:    1,
				WithdrawTaxable: 1,
				InitialNetWorth: 700000,
			},
			want: StageSustainable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyStage(tc.in); got != tc.want {
				t.Errorf("ClassifyStage = %q, want %q", got, tc.want)
			}
		})
	}
}
