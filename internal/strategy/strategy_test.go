package strategy

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestTaxableFirst_DrainsInOrder(t *testing.T) {
	s := TaxableFirst()
	w := s.Allocate(Context{
		Need:      100000,
		Available: Available{Taxable: 60000, Deferred: 50000, Roth: 50000},
	})
	if !approx(w.Taxable, 60000) || !approx(w.Deferred, 40000) || w.Roth != 0 {
		t.Errorf("allocation = %+v, want 60000/40000/0", w)
	}
	if !approx(w.Total(), 100000) {
		t.Errorf("Total = %.2f, want 100000", w.Total())
	}
}

func TestDeferredFirst_DrainsInOrder(t *testing.T) {
	s := DeferredFirst()
	w := s.Allocate(Context{
		Need:      100000,
		Available: Available{Taxable: 50000, Deferred: 60000, Roth: 50000},
	})
	if !approx(w.Deferred, 60000) || !approx(w.Taxable, 40000) || w.Roth != 0 {
		t.Errorf("allocation = %+v, want deferred 60000, taxable 40000", w)
	}
}

func TestOrdered_SpillsToRoth(t *testing.T) {
	s := TaxableFirst()
	w := s.Allocate(Context{
		Need:      100000,
		Available: Available{Taxable: 30000, Deferred: 30000, Roth: 50000},
	})
	if !approx(w.Roth, 40000) {
		t.Errorf("Roth = %.2f, want 40000", w.Roth)
	}
}

func TestOrdered_ShortAcrossAllBuckets(t *testing.T) {
	s := TaxableFirst()
	w := s.Allocate(Context{
		Need:      100000,
		Available: Available{Taxable: 10000, Deferred: 10000, Roth: 10000},
	})
	if !approx(w.Total(), 30000) {
		t.Errorf("Total = %.2f, want 30000 (everything available)", w.Total())
	}
}

func TestOrdered_ZeroNeed(t *testing.T) {
	w := TaxableFirst().Allocate(Context{
		Available: Available{Taxable: 10000},
	})
	if w.Total() != 0 {
		t.Errorf("Total = %.2f, want 0", w.Total())
	}
}

func TestProRata_SplitsByBalance(t *testing.T) {
	s := &ProRataStrategy{}
	w := s.Allocate(Context{
		Need:      60000,
		Available: Available{Taxable: 100000, Deferred: 100000, Roth: 100000},
	})
	if !approx(w.Taxable, 20000) || !approx(w.Deferred, 20000) || !approx(w.Roth, 20000) {
		t.Errorf("allocation = %+v, want an even 20000 split", w)
	}
}

func TestProRata_UnevenBalances(t *testing.T) {
	s := &ProRataStrategy{}
	w := s.Allocate(Context{
		Need:      90000,
		Available: Available{Taxable: 200000, Deferred: 100000, Roth: 0},
	})
	if !approx(w.Taxable, 60000) || !approx(w.Deferred, 30000) || w.Roth != 0 {
		t.Errorf("allocation = %+v, want 60000/30000/0", w)
	}
}

func TestProRata_NeedExceedsEverything(t *testing.T) {
	s := &ProRataStrategy{}
	w := s.Allocate(Context{
		Need:      500000,
		Available: Available{Taxable: 100000, Deferred: 50000, Roth: 25000},
	})
	if !approx(w.Total(), 175000) {
		t.Errorf("Total = %.2f, want 175000", w.Total())
	}
	if !approx(w.Taxable, 100000) || !approx(w.Deferred, 50000) || !approx(w.Roth, 25000) {
		t.Errorf("allocation = %+v, want every bucket drained", w)
	}
}

func TestFromConfig_Names(t *testing.T) {
	for _, tc := range []struct {
		cfgName string
		want    string
	}{
		{"", "taxable-first"},
		{"taxable-first", "taxable-first"},
		{"deferred-first", "deferred-first"},
		{"pro-rata", "pro-rata"},
	} {
		s, err := FromConfig(tc.cfgName, nil)
		if err != nil {
			t.Errorf("FromConfig(%q): %v", tc.cfgName, err)
			continue
		}
		if s.Name() != tc.want {
			t.Errorf("FromConfig(%q).Name() = %q, want %q", tc.cfgName, s.Name(), tc.want)
		}
	}
}

func TestFromConfig_Unknown(t *testing.T) {
	if _, err := FromConfig("bucket-brigade", nil); err == nil {
		t.Fatal("want error for unknown strategy name")
	}
}

func TestFromConfig_OrderedFromString(t *testing.T) {
	s, err := FromConfig("ordered", map[string]any{"order": "roth, taxable, deferred"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := s.Allocate(Context{
		Need:      10000,
		Available: Available{Taxable: 100000, Deferred: 100000, Roth: 100000},
	})
	if !approx(w.Roth, 10000) || w.Taxable != 0 || w.Deferred != 0 {
		t.Errorf("allocation = %+v, want roth only", w)
	}
}

func TestFromConfig_OrderedFromList(t *testing.T) {
	s, err := FromConfig("ordered", map[string]any{"order": []any{"deferred", "roth", "taxable"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "ordered" {
		t.Errorf("Name = %q, want ordered", s.Name())
	}
}

func TestFromConfig_OrderedRejectsBadInput(t *testing.T) {
	cases := []map[string]any{
		nil,
		{"order": "taxable, taxable"},
		{"order": "piggybank"},
		{"order": 42},
		{"order": ""},
	}
	for _, params := range cases {
		if _, err := FromConfig("ordered", params); err == nil {
			t.Errorf("FromConfig(ordered, %v): want error", params)
		}
	}
}
