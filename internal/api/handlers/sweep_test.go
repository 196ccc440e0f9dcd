package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"retirecast/internal/api/models"
)

func TestSweepConversions(t *testing.T) {
	r, _ := testRouter(t, false)

	w := postJSON(t, r, "/api/v1/sweep", models.SweepRequest{Scenario: testScenario()})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.SweepResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RankedBy != "net_worth" {
		t.Errorf("RankedBy = %q, want the net_worth default", resp.RankedBy)
	}
	// One off candidate plus one per ordinary bracket.
	if len(resp.Rankings) != 5 {
		t.Fatalf("rankings = %d, want 5", len(resp.Rankings))
	}
	for i, res := range resp.Rankings {
		if res.Rank != i+1 {
			t.Errorf("rank %d = %d", i, res.Rank)
		}
	}
	for i := 1; i < len(resp.Rankings); i++ {
		if resp.Rankings[i].EndingNetWorth > resp.Rankings[i-1].EndingNetWorth {
			t.Errorf("rankings not descending at %d", i)
		}
	}
}

func TestSweepConversions_RankByLifetimeTax(t *testing.T) {
	r, _ := testRouter(t, false)

	w := postJSON(t, r, "/api/v1/sweep", models.SweepRequest{
		Scenario: testScenario(),
		RankBy:   "lifetime_tax",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.SweepResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RankedBy != "lifetime_tax" {
		t.Errorf("RankedBy = %q", resp.RankedBy)
	}
	for i := 1; i < len(resp.Rankings); i++ {
		if resp.Rankings[i].LifetimeTax < resp.Rankings[i-1].LifetimeTax {
			t.Errorf("rankings not ascending at %d", i)
		}
	}
}

func TestSweepConversions_BadRankBy(t *testing.T) {
	r, _ := testRouter(t, false)

	w := postJSON(t, r, "/api/v1/sweep", models.SweepRequest{
		Scenario: testScenario(),
		RankBy:   "vibes",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decodeError(t, w).Error.Code; got != "INVALID_RANK_BY" {
		t.Errorf("code = %q", got)
	}
}

func TestSweepConversions_BadScenario(t *testing.T) {
	r, _ := testRouter(t, false)
	s := testScenario()
	s.Strategy.Name = "bucket-brigade"

	w := postJSON(t, r, "/api/v1/sweep", models.SweepRequest{Scenario: s})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decodeError(t, w).Error.Code; got != "INVALID_SCENARIO" {
		t.Errorf("code = %q", got)
	}
}
