package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"retirecast/internal/api/models"
	"retirecast/internal/config"
	"retirecast/internal/sim"
	"retirecast/internal/store"
	"retirecast/internal/tax"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SimulateHandler handles simulation-related requests.
type SimulateHandler struct {
	engine *sim.Engine
	store  *store.Store
	app    config.App
	log    *logrus.Logger
}

// NewSimulateHandler creates a new simulation handler. The store may be nil,
// in which case save requests and ledger lookups report unavailability.
func NewSimulateHandler(st *store.Store, app config.App, log *logrus.Logger) *SimulateHandler {
	return &SimulateHandler{
		engine: sim.New(),
		store:  st,
		app:    app,
		log:    log,
	}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	plan, err := req.Scenario.ToPlan(h.app.Profiles())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SCENARIO",
				Message: err.Error(),
			},
		})
		return
	}

	result, err := h.engine.Run(plan)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SIMULATION_ERROR"
		if errors.Is(err, tax.ErrInvalidProfile) {
			status, code = http.StatusBadRequest, "INVALID_PROFILE"
		} else if errors.Is(err, sim.ErrNegativeInput) {
			status, code = http.StatusBadRequest, "NEGATIVE_INPUT"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	response := models.SimulateResponse{
		Status:  "completed",
		Summary: buildSummary(plan, result),
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Rows)
	}

	if req.Options.Save {
		if h.store == nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "STORE_UNAVAILABLE",
					Message: "Run store is not configured on this server.",
				},
			})
			return
		}
		id, err := h.store.SaveRun(runMeta(req.Scenario, plan), result)
		if err != nil {
			h.log.WithError(err).Error("saving run")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "STORE_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		response.ID = id
	}

	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/runs/:id/ledger
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_UNAVAILABLE",
				Message: "Run store is not configured on this server.",
			},
		})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ID",
				Message: "run id must be an integer",
			},
		})
		return
	}

	if _, err := h.store.GetRun(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: err.Error(),
			},
		})
		return
	}

	rows, err := h.store.GetYears(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "ledger": convertLedger(rows)})
}

// ListRuns handles GET /api/v1/runs
func (h *SimulateHandler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []models.RunInfo{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	metas, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	runs := make([]models.RunInfo, 0, len(metas))
	for _, m := range metas {
		runs = append(runs, models.RunInfo{
			ID:                m.ID,
			Name:              m.Name,
			FilingStatus:      m.FilingStatus,
			StartAge:          m.StartAge,
			HorizonYears:      m.HorizonYears,
			Strategy:          m.Strategy,
			LifetimeTax:       m.LifetimeTax,
			EndingNetWorth:    m.EndingNetWorth,
			InsufficientFunds: m.InsufficientFunds,
			CreatedAt:         m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// CompareSimulations handles POST /api/v1/simulate/compare
func (h *SimulateHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	profiles := h.app.Profiles()
	comparison := make([]models.ComparisonResult, 0, len(req.Variations))

	for _, variation := range req.Variations {
		merged := config.MergeScenario(req.BaseScenario, variation.Scenario)

		plan, err := merged.ToPlan(profiles)
		if err != nil {
			h.log.WithField("variation", variation.Name).WithError(err).Warn("skipping invalid variation")
			continue
		}

		result, err := h.engine.Run(plan)
		if err != nil {
			h.log.WithField("variation", variation.Name).WithError(err).Warn("skipping failed variation")
			continue
		}

		comparison = append(comparison, models.ComparisonResult{
			Name:    variation.Name,
			Summary: buildSummary(plan, result),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helpers shared by the simulate and sweep handlers.

func runMeta(s config.Scenario, plan *sim.Plan) store.RunMeta {
	name := s.Name
	if name == "" {
		name = string(plan.Profile.Status)
	}
	return store.RunMeta{
		Name:          name,
		FilingStatus:  string(plan.Profile.Status),
		StartAge:      plan.StartAge,
		HorizonYears:  plan.HorizonYears,
		Strategy:      plan.Strategy.Name(),
		ConversionsOn: plan.Conversions.Enabled,
	}
}

func buildSummary(plan *sim.Plan, result *sim.Result) models.RunSummary {
	summary := models.RunSummary{
		Years:             len(result.Rows),
		StartAge:          plan.StartAge,
		LifetimeTax:       result.LifetimeTax,
		LifetimeSpending:  result.LifetimeSpending,
		TotalConversions:  result.TotalConversions,
		EndingNetWorth:    result.EndingNetWorth,
		EndingTaxable:     result.EndBalances.Taxable,
		EndingDeferred:    result.EndBalances.Deferred,
		EndingRoth:        result.EndBalances.Roth,
		InsufficientFunds: result.InsufficientFunds,
		FirstShortfallAge: result.FirstShortfallAge,
	}
	if len(result.Rows) > 0 {
		last := result.Rows[len(result.Rows)-1]
		summary.EndAge = last.Age
		summary.FinalStage = string(last.Stage)
		summary.Stages = distinctStages(result.Rows)
	}
	return summary
}

func distinctStages(rows []sim.YearRow) []string {
	var out []string
	var prev string
	for _, r := range rows {
		s := string(r.Stage)
		if s != prev {
			out = append(out, s)
			prev = s
		}
	}
	return out
}

func convertLedger(rows []sim.YearRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerRow{
			Year:             r.YearIdx,
			Age:              r.Age,
			Stage:            string(r.Stage),
			Spending:         r.Spending,
			SocialSecurity:   r.SocialSecurity,
			TaxableSS:        r.TaxableSS,
			RMD:              r.RMD,
			WithdrawTaxable:  r.WithdrawTaxable,
			WithdrawDeferred: r.WithdrawDeferred,
			WithdrawRoth:     r.WithdrawRoth,
			Conversion:       r.Conversion,
			RealizedGains:    r.RealizedGains,
			OrdinaryTax:      r.OrdinaryTax,
			CapGainsTax:      r.CapGainsTax,
			StateTax:         r.StateTax,
			TotalTax:         r.TotalTax,
			BalTaxable:       r.EndBalances.Taxable,
			BalDeferred:      r.EndBalances.Deferred,
			BalRoth:          r.EndBalances.Roth,
			NetWorth:         r.NetWorth,
			BasisRemaining:   r.BasisRemaining,
			Shortfall:        r.Shortfall,
			Converged:        r.Converged,
		}
	}
	return out
}
