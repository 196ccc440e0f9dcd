package tax

import "testing"

func TestRMD_BeforeTableStarts(t *testing.T) {
	if got := RMD(500000, 72); got != 0 {
		t.Errorf("RMD at 72 = %.2f, want 0", got)
	}
}

func TestRMD_TableDivisor(t *testing.T) {
	// Age 73 divisor is 26.5.
	if got := RMD(265000, 73); !approx(got, 10000) {
		t.Errorf("RMD = %.2f, want 10000", got)
	}
	// Age 75 divisor is 24.6.
	if got := RMD(246000, 75); !approx(got, 10000) {
		t.Errorf("RMD = %.2f, want 10000", got)
	}
}

func TestRMD_GrowsWithAge(t *testing.T) {
	prev := 0.0
	for age := 73; age <= 100; age++ {
		got := RMD(1_000_000, age)
		if got <= prev {
			t.Fatalf("RMD at %d = %.2f, want > %.2f", age, got, prev)
		}
		prev = got
	}
}

func TestRMD_PastTableEnd(t *testing.T) {
	if got := RMD(500000, 101); got != 0 {
		t.Errorf("RMD at 101 = %.2f, want 0", got)
	}
}

func TestRMD_ZeroBalance(t *testing.T) {
	if got := RMD(0, 80); got != 0 {
		t.Errorf("RMD = %.2f, want 0", got)
	}
}
