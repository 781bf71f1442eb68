package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the cash direction of a ledger transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Opposite returns the other cash direction.
func (t TransactionType) Opposite() TransactionType {
	if t == Income {
		return Expense
	}
	return Income
}

// Transaction is a single ledger record. Its effect on the jars is derived from
// Type, Amount, JarType and, for AUTO transactions, the Ratios captured when it was recorded.
type Transaction struct {
	ID              string          `json:"id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"` // Positive, base currency
	Description     string          `json:"description"`
	JarType         *JarType        `json:"jarType"` // nil distributes across all jars
	Ratios          JarRatios       `json:"ratios"`  // Captured at creation for AUTO transactions
	Timestamp       time.Time       `json:"timestamp"`
	Note            *string         `json:"note"`
	Image           *string         `json:"image"`
	LoanID          *string         `json:"loanId"`          // Weak reference to the originating loan
	TransferGroupID *string         `json:"transferGroupId"` // Shared by the two legs of a transfer
}

// IsAuto reports whether the transaction is distributed across all jars.
func (t Transaction) IsAuto() bool {
	return t.JarType == nil
}

// IsTransferLeg reports whether the transaction is one half of a transfer.
func (t Transaction) IsTransferLeg() bool {
	return t.TransferGroupID != nil && *t.TransferGroupID != ""
}

// IsLoanLinked reports whether the transaction was synthesized by a loan operation.
func (t Transaction) IsLoanLinked() bool {
	return t.LoanID != nil && *t.LoanID != ""
}

// Validate checks the fields every ledger transaction must carry.
func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("transaction type must be income or expense, got %q", t.Type)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction description is required")
	}
	if t.JarType != nil && !t.JarType.IsValid() {
		return fmt.Errorf("unknown jar %q", *t.JarType)
	}
	return nil
}

// TransactionInput is the user-authored part of a transaction, used for create and edit.
// Edits replace every field listed here; links (loan, transfer) are never taken from input.
type TransactionInput struct {
	Type        TransactionType `validate:"required,oneof=income expense"`
	Amount      decimal.Decimal
	Description string `validate:"required"`
	JarType     *JarType
	Timestamp   time.Time
	Note        *string
	Image       *string
}

// ToTransaction builds a transaction with the given id from the input.
func (in TransactionInput) ToTransaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		JarType:     in.JarType,
		Timestamp:   in.Timestamp,
		Note:        in.Note,
		Image:       in.Image,
	}
}
