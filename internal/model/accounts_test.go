package model

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestNewAccounts_RejectsNegativeBalance(t *testing.T) {
	_, err := NewAccounts(AccountParams{}, AccountState{Taxable: -1})
	if err == nil {
		t.Fatal("want error for negative balance")
	}
}

func TestNewAccounts_RejectsBasisAboveBalance(t *testing.T) {
	_, err := NewAccounts(AccountParams{}, AccountState{Taxable: 100, Basis: 200})
	if err == nil {
		t.Fatal("want error for basis above taxable balance")
	}
}

func TestBasisFraction(t *testing.T) {
	a := Accounts{State: AccountState{Taxable: 100000, Basis: 40000}}
	if got := a.BasisFraction(); !approx(got, 0.4) {
		t.Errorf("BasisFraction = %.4f, want 0.4", got)
	}

	empty := Accounts{}
	if got := empty.BasisFraction(); got != 0 {
		t.Errorf("BasisFraction on empty account = %.4f, want 0", got)
	}
}

func TestApplyYear_WithdrawalsAndGrowth(t *testing.T) {
	a := Accounts{
		Params: AccountParams{GrowthTaxable: 0.05},
		State:  AccountState{Taxable: 100000, Deferred: 200000, Roth: 50000, Basis: 40000},
	}
	a.ApplyYear(YearFlows{
		WithdrawTaxable:  10000,
		WithdrawDeferred: 20000,
		WithdrawRoth:     5000,
		Conversion:       10000,
	})

	// Basis falls by its share of the withdrawal: 40% of 10,000.
	if !approx(a.State.Basis, 36000) {
		t.Errorf("Basis = %.2f, want 36000", a.State.Basis)
	}
	if !approx(a.State.Taxable, 90000*1.05) {
		t.Errorf("Taxable = %.2f, want %.2f", a.State.Taxable, 90000*1.05)
	}
	// Conversion leaves the deferred bucket along with the withdrawal.
	if !approx(a.State.Deferred, 170000) {
		t.Errorf("Deferred = %.2f, want 170000", a.State.Deferred)
	}
	// Conversion lands in Roth before growth.
	if !approx(a.State.Roth, 55000) {
		t.Errorf("Roth = %.2f, want 55000", a.State.Roth)
	}
}

func TestApplyYear_TurnoverSaleConsumesBasis(t *testing.T) {
	a := Accounts{State: AccountState{Taxable: 100000, Basis: 40000}}
	a.ApplyYear(YearFlows{PlannedSale: 10000})

	if !approx(a.State.Basis, 36000) {
		t.Errorf("Basis = %.2f, want 36000", a.State.Basis)
	}
	// The sale reinvests in place; the balance does not move.
	if !approx(a.State.Taxable, 100000) {
		t.Errorf("Taxable = %.2f, want 100000", a.State.Taxable)
	}
}

func TestApplyYear_WithdrawalSubsumesTurnover(t *testing.T) {
	a := Accounts{State: AccountState{Taxable: 100000, Basis: 40000}}
	a.ApplyYear(YearFlows{WithdrawTaxable: 10000, PlannedSale: 10000})

	// Only the withdrawal consumes basis when both are present.
	if !approx(a.State.Basis, 36000) {
		t.Errorf("Basis = %.2f, want 36000", a.State.Basis)
	}
}

func TestApplyYear_FloorsAtZero(t *testing.T) {
	a := Accounts{State: AccountState{Taxable: 5000, Deferred: 3000, Roth: 1000}}
	a.ApplyYear(YearFlows{WithdrawTaxable: 10000, WithdrawDeferred: 10000, WithdrawRoth: 10000})

	s := a.State
	if s.Taxable != 0 || s.Deferred != 0 || s.Roth != 0 {
		t.Errorf("balances = %+v, want all zero", s)
	}
}

func TestApplyYear_BasisClampedToBalance(t *testing.T) {
	a := Accounts{
		Params: AccountParams{GrowthTaxable: -0.5},
		State:  AccountState{Taxable: 1000, Basis: 1000},
	}
	a.ApplyYear(YearFlows{})

	if !approx(a.State.Taxable, 500) {
		t.Errorf("Taxable = %.2f, want 500", a.State.Taxable)
	}
	if a.State.Basis > a.State.Taxable {
		t.Errorf("Basis %.2f exceeds balance %.2f", a.State.Basis, a.State.Taxable)
	}
}

func TestNetWorth(t *testing.T) {
	a := Accounts{State: AccountState{Taxable: 1, Deferred: 2, Roth: 3}}
	if got := a.NetWorth(); got != 6 {
		t.Errorf("NetWorth = %.2f, want 6", got)
	}
}
