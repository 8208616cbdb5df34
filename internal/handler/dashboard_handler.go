package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educhain/educhain-server/internal/gemini"
	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
)

// DashboardHandler handles analytics endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	insightService   *service.InsightService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, insightService *service.InsightService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		insightService:   insightService,
	}
}

// Stats godoc
// GET /api/v1/dashboard/stats
// Returns the aggregate figures plus the caller's role-specific slice.
func (h *DashboardHandler) Stats(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Insight godoc
// POST /api/v1/dashboard/insight
// Generates role-tailored recommendations from live dashboard figures.
func (h *DashboardHandler) Insight(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	insight, err := h.insightService.Generate(c.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrAINotConfigured)
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrAIUnavailable)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"insight": insight})
}
