package dto

import (
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoanRequest creates or edits a loan.
type LoanRequest struct {
	Type       domain.LoanType `json:"type" binding:"required,oneof=BORROW LEND"`
	LenderName string          `json:"lenderName" binding:"required"`
	Principal  decimal.Decimal `json:"principal" swaggertype:"string"`
	StartDate  *time.Time      `json:"startDate"`
	LoanJar    string          `json:"loanJar"`
	Category   string          `json:"category"`
	IsUrgent   bool            `json:"isUrgent"`
	Image      *string         `json:"image"`
}

func (r LoanRequest) ToInput() (domain.LoanInput, error) {
	jar, err := parseJar(r.LoanJar)
	if err != nil {
		return domain.LoanInput{}, err
	}
	return domain.LoanInput{
		Type:       r.Type,
		LenderName: r.LenderName,
		Principal:  r.Principal,
		StartDate:  timeOrZero(r.StartDate),
		LoanJar:    jar,
		Category:   r.Category,
		IsUrgent:   r.IsUrgent,
		Image:      r.Image,
	}, nil
}

// LoanPaymentRequest records a repayment.
type LoanPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Timestamp *time.Time      `json:"timestamp"`
	Note      *string         `json:"note"`
}

func (r LoanPaymentRequest) ToPayment() domain.LoanPayment {
	return domain.LoanPayment{Amount: r.Amount, Timestamp: timeOrZero(r.Timestamp), Note: r.Note}
}

// LoanResponse is a loan with its derived figures.
type LoanResponse struct {
	ID                  string            `json:"id"`
	Type                domain.LoanType   `json:"type"`
	LenderName          string            `json:"lenderName"`
	Principal           decimal.Decimal   `json:"principal" swaggertype:"string"`
	PaidAmount          decimal.Decimal   `json:"paidAmount" swaggertype:"string"`
	Remaining           decimal.Decimal   `json:"remaining" swaggertype:"string"`
	Status              domain.LoanStatus `json:"status"`
	StartDate           time.Time         `json:"startDate"`
	LoanJar             string            `json:"loanJar"`
	Category            string            `json:"category"`
	IsUrgent            bool              `json:"isUrgent"`
	Image               *string           `json:"image,omitempty"`
	OriginTransactionID string            `json:"originTransactionId"`
}

// LoanDetailResponse is a loan with every transaction linked to it.
type LoanDetailResponse struct {
	LoanResponse
	Transactions []TransactionResponse `json:"transactions"`
}

// LoanPaymentResponse is the loan after a payment and the payment transaction.
type LoanPaymentResponse struct {
	Loan        LoanResponse        `json:"loan"`
	Transaction TransactionResponse `json:"transaction"`
}

func ToLoanResponse(l domain.Loan) LoanResponse {
	return LoanResponse{
		ID:                  l.ID,
		Type:                l.Type,
		LenderName:          l.LenderName,
		Principal:           l.Principal,
		PaidAmount:          l.PaidAmount,
		Remaining:           l.Remaining(),
		Status:              l.Status(),
		StartDate:           l.StartDate,
		LoanJar:             domain.JarLabel(l.LoanJar),
		Category:            l.Category,
		IsUrgent:            l.IsUrgent,
		Image:               l.Image,
		OriginTransactionID: l.OriginTransactionID,
	}
}

func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, ToLoanResponse(l))
	}
	return out
}
