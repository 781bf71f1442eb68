package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles the ledger and transfer endpoints.
type transactionHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	transferService portssvc.TransferSvc
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade, ts portssvc.TransferSvc) *transactionHandler {
	return &transactionHandler{ledgerService: ls, transferService: ts}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, ts portssvc.TransferSvc) {
	h := newTransactionHandler(ls, ts)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.createTransaction)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}
	rg.POST("/transfers", h.createTransfer)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.getBalances)
		balances.POST("/reconcile", h.reconcile)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists ledger transactions, most recent first, using token-based pagination
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, next, err := h.ledgerService.ListTransactions(c.Request.Context(), id, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	})
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense. Without a jar the amount is split by the current ratios.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Email not verified"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid transaction")
		return
	}

	txn, err := h.ledgerService.AddTransaction(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction recorded", slog.String("transaction_id", txn.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), id, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Replaces a transaction's fields and re-applies its effect. Editing one leg of a transfer updates both.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid transaction")
		return
	}

	txn, err := h.ledgerService.EditTransaction(c.Request.Context(), id, c.Param("transactionID"), in)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	if txn == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and reverses its effect. Transfer siblings and loan origins are removed with it.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {array} dto.TransactionResponse "Removed transactions"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	removed, err := h.ledgerService.DeleteTransaction(c.Request.Context(), id, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(removed))
}

// createTransfer godoc
// @Summary Transfer between jars
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer"
// @Success 201 {array} dto.TransactionResponse "Expense leg then income leg"
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *transactionHandler) createTransfer(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	tr, err := req.ToRequest()
	if err != nil {
		respondError(c, err, "Invalid transfer")
		return
	}

	legs, err := h.transferService.Transfer(c.Request.Context(), id, tr)
	if err != nil {
		respondError(c, err, "Failed to transfer")
		return
	}
	middleware.TrackEvent(c, "transfer_recorded", map[string]any{
		"from": string(tr.From),
		"to":   string(tr.To),
	})
	c.JSON(http.StatusCreated, dto.ToTransactionResponses(legs))
}

// getBalances godoc
// @Summary Current jar balances
// @Tags balances
// @Produce json
// @Success 200 {object} dto.BalancesResponse
// @Security BearerAuth
// @Router /balances [get]
func (h *transactionHandler) getBalances(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	balances, err := h.ledgerService.GetBalances(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve balances")
		return
	}
	c.JSON(http.StatusOK, dto.BalancesResponse{Balances: balances, Total: balances.Total()})
}

// reconcile godoc
// @Summary Recompute balances from history
// @Description Replays every transaction and reports whether the stored balances matched
// @Tags balances
// @Produce json
// @Success 200 {object} dto.BalancesResponse
// @Security BearerAuth
// @Router /balances/reconcile [post]
func (h *transactionHandler) reconcile(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	balances, consistent, err := h.ledgerService.Reconcile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to reconcile balances")
		return
	}
	c.JSON(http.StatusOK, dto.BalancesResponse{Balances: balances, Total: balances.Total(), Consistent: &consistent})
}
