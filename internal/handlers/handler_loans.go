package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func registerLoanRoutes(rg *gin.RouterGroup, ls portssvc.LoanSvcFacade) {
	h := &loanHandler{loanService: ls}

	loans := rg.Group("/loans")
	{
		loans.GET("", h.listLoans)
		loans.POST("", h.createLoan)
		loans.GET("/:loanID", h.getLoan)
		loans.PUT("/:loanID", h.updateLoan)
		loans.DELETE("/:loanID", h.deleteLoan)
		loans.POST("/:loanID/payments", h.payLoan)
	}
}

// listLoans godoc
// @Summary List loans
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	loans, err := h.loanService.ListLoans(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// createLoan godoc
// @Summary Record a loan
// @Description Creates a borrow or lend record together with its origin transaction
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.LoanRequest true "Loan"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.LoanRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid loan")
		return
	}
	loan, err := h.loanService.CreateLoan(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Failed to create loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(*loan))
}

// getLoan godoc
// @Summary Get a loan with its transactions
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	loan, txns, err := h.loanService.GetLoan(c.Request.Context(), id, c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.LoanDetailResponse{
		LoanResponse: dto.ToLoanResponse(*loan),
		Transactions: dto.ToTransactionResponses(txns),
	})
}

// updateLoan godoc
// @Summary Edit a loan
// @Description Replaces the loan's fields and keeps its origin transaction in step
// @Tags loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param loan body dto.LoanRequest true "Loan"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.LoanRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid loan")
		return
	}
	loan, err := h.loanService.EditLoan(c.Request.Context(), id, c.Param("loanID"), in)
	if err != nil {
		respondError(c, err, "Failed to update loan")
		return
	}
	if loan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes the loan and every transaction linked to it
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {array} dto.TransactionResponse "Removed transactions"
// @Security BearerAuth
// @Router /loans/{loanID} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	removed, err := h.loanService.DeleteLoan(c.Request.Context(), id, c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to delete loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(removed))
}

// payLoan godoc
// @Summary Record a loan payment
// @Tags loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param payment body dto.LoanPaymentRequest true "Payment"
// @Success 201 {object} dto.LoanPaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Amount not positive or above the remaining balance"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID}/payments [post]
func (h *loanHandler) payLoan(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.LoanPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	loan, txn, err := h.loanService.PayLoan(c.Request.Context(), id, c.Param("loanID"), req.ToPayment())
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.LoanPaymentResponse{
		Loan:        dto.ToLoanResponse(*loan),
		Transaction: dto.ToTransactionResponse(*txn),
	})
}
