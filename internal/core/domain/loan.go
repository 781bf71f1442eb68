package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanType tells whether the user borrowed money or lent it out.
type LoanType string

const (
	Borrow LoanType = "BORROW"
	Lend   LoanType = "LEND"
)

// IsValid reports whether t is BORROW or LEND.
func (t LoanType) IsValid() bool {
	return t == Borrow || t == Lend
}

// OriginType is the cash direction of the transaction that opens a loan of this type.
func (t LoanType) OriginType() TransactionType {
	if t == Borrow {
		return Income
	}
	return Expense
}

// PaymentType is the cash direction of a repayment: paying back a debt is an expense,
// recovering money that was lent is income.
func (t LoanType) PaymentType() TransactionType {
	return t.OriginType().Opposite()
}

// LoanStatus is derived from the paid amount.
type LoanStatus string

const (
	LoanOpen    LoanStatus = "OPEN"
	LoanSettled LoanStatus = "SETTLED"
)

// Loan is a debt owed by or to the user. OriginTransactionID points at the synthetic
// transaction created with the loan; repayments share LoanID == ID.
type Loan struct {
	ID                  string          `json:"id"`
	Type                LoanType        `json:"type"`
	LenderName          string          `json:"lenderName"` // Counterparty
	Principal           decimal.Decimal `json:"principal"`
	PaidAmount          decimal.Decimal `json:"paidAmount"`
	StartDate           time.Time       `json:"startDate"`
	LoanJar             *JarType        `json:"loanJar"`
	Category            string          `json:"category"`
	IsUrgent            bool            `json:"isUrgent"`
	Image               *string         `json:"image"`
	OriginTransactionID string          `json:"originTransactionId"`
}

// Remaining returns principal minus what has been paid.
func (l Loan) Remaining() decimal.Decimal {
	return l.Principal.Sub(l.PaidAmount)
}

// Status reports whether the loan is still open.
func (l Loan) Status() LoanStatus {
	if l.PaidAmount.GreaterThanOrEqual(l.Principal) {
		return LoanSettled
	}
	return LoanOpen
}

// LoanInput carries every editable loan field. It is used for create and for edit,
// where it replaces the previous values wholesale.
type LoanInput struct {
	Type       LoanType `validate:"required,oneof=BORROW LEND"`
	LenderName string   `validate:"required"`
	Principal  decimal.Decimal
	StartDate  time.Time
	LoanJar    *JarType
	Category   string
	IsUrgent   bool
	Image      *string
}

// Validate checks the loan input.
func (in LoanInput) Validate() error {
	if !in.Type.IsValid() {
		return fmt.Errorf("loan type must be BORROW or LEND, got %q", in.Type)
	}
	if strings.TrimSpace(in.LenderName) == "" {
		return fmt.Errorf("lender name is required")
	}
	if !in.Principal.IsPositive() {
		return fmt.Errorf("loan principal must be positive")
	}
	if in.LoanJar != nil && !in.LoanJar.IsValid() {
		return fmt.Errorf("unknown jar %q", *in.LoanJar)
	}
	return nil
}

// LoanPayment describes one repayment.
type LoanPayment struct {
	Amount    decimal.Decimal
	Timestamp time.Time
	Note      *string
}
