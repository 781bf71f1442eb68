package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type statsHandler struct {
	statsService    portssvc.StatsSvc
	settingsService portssvc.SettingsSvcFacade
}

func registerStatsRoutes(rg *gin.RouterGroup, ss portssvc.StatsSvc, settings portssvc.SettingsSvcFacade) {
	h := &statsHandler{statsService: ss, settingsService: settings}

	stats := rg.Group("/stats")
	{
		stats.GET("/summary", h.summary)
		stats.GET("/series", h.series)
	}
}

// summary godoc
// @Summary Dashboard summary
// @Description Balances, debt, net worth and jar distribution, with headline figures formatted in the display currency
// @Tags stats
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Security BearerAuth
// @Router /stats/summary [get]
func (h *statsHandler) summary(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	summary, err := h.statsService.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(*summary, settings.Currency))
}

// series godoc
// @Summary Income and expense series
// @Tags stats
// @Produce json
// @Param period query string false "week, month or year" default(month)
// @Success 200 {object} dto.SeriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stats/series [get]
func (h *statsHandler) series(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var params dto.SeriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	buckets, err := h.statsService.Series(c.Request.Context(), id, params.Period)
	if err != nil {
		respondError(c, err, "Failed to compute series")
		return
	}
	c.JSON(http.StatusOK, dto.SeriesResponse{Period: params.Period, Buckets: buckets})
}
