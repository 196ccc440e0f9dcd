package handlers

import (
	"net/http"

	"retirecast/internal/api/models"
	"retirecast/internal/config"
	"retirecast/internal/tax"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the filing-status and strategy catalogs.
type CatalogHandler struct {
	app config.App
}

func NewCatalogHandler(app config.App) *CatalogHandler {
	return &CatalogHandler{app: app}
}

// ListProfiles handles GET /api/v1/profiles
func (h *CatalogHandler) ListProfiles(c *gin.Context) {
	profiles := h.app.Profiles()

	out := make([]models.ProfileInfo, 0, len(tax.Statuses))
	for _, status := range tax.Statuses {
		p, ok := profiles[status]
		if !ok {
			continue
		}
		out = append(out, models.ProfileInfo{
			Status:            string(status),
			StandardDeduction: p.StandardDeduction,
			OrdinaryBrackets:  convertBrackets(p.OrdinaryBrackets),
			CapGainsBrackets:  convertBrackets(p.CapGainsBrackets),
			SSBaseThreshold:   p.SSBaseThreshold,
			SSUpperThreshold:  p.SSUpperThreshold,
			IRMAATier0:        p.IRMAATier0,
		})
	}

	c.JSON(http.StatusOK, gin.H{"profiles": out})
}

func convertBrackets(brackets []tax.Bracket) []models.BracketInfo {
	out := make([]models.BracketInfo, len(brackets))
	for i, b := range brackets {
		out[i] = models.BracketInfo{Rate: b.Rate, Limit: b.Limit}
	}
	return out
}

// ListStrategies handles GET /api/v1/strategies
func (h *CatalogHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "taxable-first",
			Description: "Default ordering. Drains the taxable account, then tax-deferred, then Roth.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "deferred-first",
			Description: "Drains tax-deferred money ahead of taxable, trading current ordinary tax for smaller future RMDs.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "pro-rata",
			Description: "Spreads each year's need across buckets in proportion to their balances.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "ordered",
			Description: "Custom bucket ordering.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "order",
					Type:        "string",
					Description: "Comma-separated bucket order from {taxable, deferred, roth}",
					Default:     "taxable,deferred,roth",
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
