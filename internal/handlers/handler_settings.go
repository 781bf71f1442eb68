package handlers

import (
	"net/http"
	"sort"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, ss portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: ss}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
		settings.PUT("/ratios", h.updateRatios)
		settings.PUT("/pin", h.setPIN)
		settings.DELETE("/pin", h.clearPIN)
		settings.POST("/pin/verify", h.verifyPIN)
	}
	rg.GET("/currencies", h.listCurrencies)
}

// getSettings godoc
// @Summary Get preferences
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(*settings))
}

// updateSettings godoc
// @Summary Update preferences
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateSettingsRequest true "Preferences"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(*settings))
}

// updateRatios godoc
// @Summary Set the AUTO split
// @Description Applies to future AUTO transactions only
// @Tags settings
// @Accept json
// @Produce json
// @Param ratios body dto.UpdateRatiosRequest true "Jar shares summing to 1"
// @Success 200 {object} domain.JarRatios
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings/ratios [put]
func (h *settingsHandler) updateRatios(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateRatiosRequest
	if !bindJSON(c, &req) {
		return
	}
	ratios, err := h.settingsService.UpdateRatios(c.Request.Context(), id, domain.JarRatios(req.Ratios))
	if err != nil {
		respondError(c, err, "Failed to update ratios")
		return
	}
	c.JSON(http.StatusOK, ratios)
}

// setPIN godoc
// @Summary Set the app PIN
// @Tags settings
// @Accept json
// @Param pin body dto.PINRequest true "4 to 6 digits"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings/pin [put]
func (h *settingsHandler) setPIN(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.PINRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.settingsService.SetPIN(c.Request.Context(), id, req.PIN); err != nil {
		respondError(c, err, "Failed to set PIN")
		return
	}
	c.Status(http.StatusNoContent)
}

// clearPIN godoc
// @Summary Remove the app PIN
// @Tags settings
// @Success 204
// @Security BearerAuth
// @Router /settings/pin [delete]
func (h *settingsHandler) clearPIN(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.settingsService.ClearPIN(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to clear PIN")
		return
	}
	c.Status(http.StatusNoContent)
}

// verifyPIN godoc
// @Summary Check the app PIN
// @Tags settings
// @Accept json
// @Produce json
// @Param pin body dto.PINRequest true "PIN"
// @Success 200 {object} dto.VerifyPINResponse
// @Security BearerAuth
// @Router /settings/pin/verify [post]
func (h *settingsHandler) verifyPIN(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.PINRequest
	if !bindJSON(c, &req) {
		return
	}
	valid, err := h.settingsService.VerifyPIN(c.Request.Context(), id, req.PIN)
	if err != nil {
		respondError(c, err, "Failed to verify PIN")
		return
	}
	c.JSON(http.StatusOK, dto.VerifyPINResponse{Valid: valid})
}

// listCurrencies godoc
// @Summary List display currencies
// @Tags settings
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *settingsHandler) listCurrencies(c *gin.Context) {
	out := make([]dto.CurrencyResponse, 0, len(domain.SupportedCurrencies))
	for _, cur := range domain.SupportedCurrencies {
		out = append(out, dto.ToCurrencyResponse(cur))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	c.JSON(http.StatusOK, out)
}
