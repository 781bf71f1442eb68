package services

import (
	"context"
	"io"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
)

// ParseResult is what ParseAndRecord did with a message.
type ParseResult struct {
	Parsed      gateways.ParsedTransaction `json:"parsed"`
	Transaction *domain.Transaction        `json:"transaction,omitempty"` // Set when a transaction was recorded
}

// ImportResult summarizes a document import.
type ImportResult struct {
	Imported []domain.Transaction `json:"imported"`
	Skipped  int                  `json:"skipped"`
}

// AssistantSvc defines the AI-backed operations.
type AssistantSvc interface {
	// ParseAndRecord reads a free-text message and records a transaction when the model
	// asks for one.
	ParseAndRecord(ctx context.Context, id domain.Identity, text string) (*ParseResult, error)

	// ImportDocument records every valid transaction found in a document.
	ImportDocument(ctx context.Context, id domain.Identity, document string) (*ImportResult, error)

	// Advice returns short budgeting advice based on the ledger.
	Advice(ctx context.Context, id domain.Identity, question string) (string, error)
}

// ExportSvc writes the transaction list in tabular formats.
type ExportSvc interface {
	ExportCSV(ctx context.Context, id domain.Identity, w io.Writer) error
	ExportXLSX(ctx context.Context, id domain.Identity, w io.Writer) error
}
