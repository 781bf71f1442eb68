package gateways

import (
	"context"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ParseAction is what the model decided to do with a free-text message.
type ParseAction string

const (
	ActionAdd    ParseAction = "add"
	ActionIgnore ParseAction = "ignore"
)

// ParsedTransaction is the structured reading of one free-text message.
type ParsedTransaction struct {
	Action      ParseAction     `json:"action"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	JarType     string          `json:"jarType"` // Jar code or "AUTO"
	IsExpense   bool            `json:"isExpense"`
}

// ParsedEntry is one transaction extracted from a document.
type ParsedEntry struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	JarType     string          `json:"jarType"`
	Timestamp   *time.Time      `json:"timestamp"`
}

// AdviceRequest is the ledger context handed to the model for advice.
type AdviceRequest struct {
	Language string
	Currency string
	Summary  domain.LedgerSummary
	Series   []domain.SeriesBucket
	Question string
}

// AssistantGateway is the external generative model. Quota errors wrap
// apperrors.ErrAIQuotaExceeded; unreadable model output wraps apperrors.ErrAIParse.
type AssistantGateway interface {
	// ParseTransaction reads a free-text message, using recent transactions as context.
	// A nil result means the model could not produce a reading.
	ParseTransaction(ctx context.Context, text string, recent []domain.Transaction) (*ParsedTransaction, error)

	// ExtractTransactions pulls every transaction out of a raw document.
	ExtractTransactions(ctx context.Context, document string) ([]ParsedEntry, error)

	// Advise writes short budgeting advice.
	Advise(ctx context.Context, req AdviceRequest) (string, error)
}
