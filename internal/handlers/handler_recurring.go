package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func registerRecurringRoutes(rg *gin.RouterGroup, rs portssvc.RecurringSvcFacade) {
	h := &recurringHandler{recurringService: rs}

	recurring := rg.Group("/recurring")
	{
		recurring.GET("", h.listTemplates)
		recurring.POST("", h.createTemplate)
		recurring.PUT("/:templateID", h.updateTemplate)
		recurring.DELETE("/:templateID", h.deleteTemplate)
		recurring.POST("/:templateID/materialize", h.materialize)
	}
}

// listTemplates godoc
// @Summary List recurring templates
// @Tags recurring
// @Produce json
// @Success 200 {array} dto.RecurringTemplateResponse
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listTemplates(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	templates, err := h.recurringService.ListTemplates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list recurring templates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringTemplateResponses(templates))
}

// createTemplate godoc
// @Summary Create a recurring template
// @Tags recurring
// @Accept json
// @Produce json
// @Param template body dto.RecurringTemplateRequest true "Template"
// @Success 201 {object} dto.RecurringTemplateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createTemplate(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.RecurringTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid recurring template")
		return
	}
	tmpl, err := h.recurringService.CreateTemplate(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Failed to create recurring template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecurringTemplateResponse(*tmpl))
}

// updateTemplate godoc
// @Summary Replace a recurring template
// @Tags recurring
// @Accept json
// @Produce json
// @Param templateID path string true "Template ID"
// @Param template body dto.RecurringTemplateRequest true "Template"
// @Success 200 {object} dto.RecurringTemplateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring/{templateID} [put]
func (h *recurringHandler) updateTemplate(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.RecurringTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid recurring template")
		return
	}
	tmpl, err := h.recurringService.UpdateTemplate(c.Request.Context(), id, c.Param("templateID"), in)
	if err != nil {
		respondError(c, err, "Failed to update recurring template")
		return
	}
	if tmpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurring template not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringTemplateResponse(*tmpl))
}

// deleteTemplate godoc
// @Summary Delete a recurring template
// @Description Transactions already produced by the template are kept
// @Tags recurring
// @Param templateID path string true "Template ID"
// @Success 204
// @Security BearerAuth
// @Router /recurring/{templateID} [delete]
func (h *recurringHandler) deleteTemplate(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.recurringService.DeleteTemplate(c.Request.Context(), id, c.Param("templateID")); err != nil {
		respondError(c, err, "Failed to delete recurring template")
		return
	}
	c.Status(http.StatusNoContent)
}

// materialize godoc
// @Summary Emit a transaction from a template
// @Tags recurring
// @Produce json
// @Param templateID path string true "Template ID"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Template inactive or outside its date range"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring/{templateID}/materialize [post]
func (h *recurringHandler) materialize(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	txn, err := h.recurringService.Materialize(c.Request.Context(), id, c.Param("templateID"))
	if err != nil {
		respondError(c, err, "Failed to materialize recurring template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}
