package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type assistantHandler struct {
	assistantService portssvc.AssistantSvc
}

// registerAssistantRoutes mounts the AI endpoints behind their own rate limiter.
func registerAssistantRoutes(rg *gin.RouterGroup, as portssvc.AssistantSvc, rateLimiter *limiter.Limiter) {
	h := &assistantHandler{assistantService: as}

	assistant := rg.Group("/assistant")
	if rateLimiter != nil {
		assistant.Use(middleware.RateLimit(rateLimiter))
	}
	{
		assistant.POST("/parse", h.parseMessage)
		assistant.POST("/import", h.importDocument)
		assistant.POST("/advice", h.advice)
	}
}

// parseMessage godoc
// @Summary Record a transaction from free text
// @Description Reads a message such as "lunch 50k" and records the transaction the model finds
// @Tags assistant
// @Accept json
// @Produce json
// @Param message body dto.ParseMessageRequest true "Message"
// @Success 200 {object} dto.ParseMessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse "Rate limit or AI quota exceeded"
// @Failure 502 {object} dto.ErrorResponse "AI provider failure"
// @Security BearerAuth
// @Router /assistant/parse [post]
func (h *assistantHandler) parseMessage(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.ParseMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.assistantService.ParseAndRecord(c.Request.Context(), id, req.Text)
	if err != nil {
		respondError(c, err, "Failed to read message")
		return
	}

	resp := dto.ParseMessageResponse{Parsed: result.Parsed}
	if result.Transaction != nil {
		txn := dto.ToTransactionResponse(*result.Transaction)
		resp.Recorded = true
		resp.Transaction = &txn
	}
	c.JSON(http.StatusOK, resp)
}

// importDocument godoc
// @Summary Import transactions from a document
// @Description Extracts transactions from statement or receipt text and records the valid ones
// @Tags assistant
// @Accept json
// @Produce json
// @Param document body dto.ImportDocumentRequest true "Document text"
// @Success 200 {object} dto.ImportDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assistant/import [post]
func (h *assistantHandler) importDocument(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.ImportDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.assistantService.ImportDocument(c.Request.Context(), id, req.Document)
	if err != nil {
		respondError(c, err, "Failed to import document")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Document imported",
		slog.Int("imported", len(result.Imported)), slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusOK, dto.ImportDocumentResponse{
		Imported: dto.ToTransactionResponses(result.Imported),
		Skipped:  result.Skipped,
	})
}

// advice godoc
// @Summary Budgeting advice
// @Tags assistant
// @Accept json
// @Produce json
// @Param question body dto.AdviceRequest false "Optional question"
// @Success 200 {object} dto.AdviceResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assistant/advice [post]
func (h *assistantHandler) advice(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.AdviceRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	advice, err := h.assistantService.Advice(c.Request.Context(), id, req.Question)
	if err != nil {
		respondError(c, err, "Failed to get advice")
		return
	}
	c.JSON(http.StatusOK, dto.AdviceResponse{Advice: advice})
}
