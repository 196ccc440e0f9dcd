package handlers

import (
	"net/http"

	"retirecast/internal/analysis"
	"retirecast/internal/api/models"
	"retirecast/internal/config"
	"retirecast/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SweepHandler ranks conversion-ceiling candidates for a scenario.
type SweepHandler struct {
	engine *sim.Engine
	app    config.App
	log    *logrus.Logger
}

func NewSweepHandler(app config.App, log *logrus.Logger) *SweepHandler {
	return &SweepHandler{engine: sim.New(), app: app, log: log}
}

// SweepConversions handles POST /api/v1/sweep
func (h *SweepHandler) SweepConversions(c *gin.Context) {
	var req models.SweepRequest
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

	outcomes, err := analysis.SweepConversions(h.engine, plan)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SWEEP_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	rankBy := req.RankBy
	var ranked []analysis.ConversionOutcome
	switch rankBy {
	case "lifetime_tax":
		ranked = analysis.RankByLifetimeTax(outcomes)
	case "", "net_worth":
		rankBy = "net_worth"
		ranked = analysis.RankByEndingNetWorth(outcomes)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_RANK_BY",
				Message: "rank_by must be \"net_worth\" or \"lifetime_tax\"",
			},
		})
		return
	}

	rankings := make([]models.SweepResult, 0, len(ranked))
	for i, o := range ranked {
		rankings = append(rankings, models.SweepResult{
			Rank:              i + 1,
			Label:             o.Label,
			TargetRate:        o.TargetRate,
			LifetimeTax:       o.LifetimeTax,
			TotalConversions:  o.TotalConversions,
			EndingNetWorth:    o.EndingNetWorth,
			EndingRoth:        o.EndingRoth,
			InsufficientFunds: o.InsufficientFunds,
		})
	}

	c.JSON(http.StatusOK, models.SweepResponse{RankedBy: rankBy, Rankings: rankings})
}
