package dto

import "github.com/SscSPs/six_jars_app/internal/core/ports/gateways"

// ParseMessageRequest is a free-text message such as "lunch 50k".
type ParseMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type ParseMessageResponse struct {
	Parsed      gateways.ParsedTransaction `json:"parsed"`
	Recorded    bool                       `json:"recorded"`
	Transaction *TransactionResponse       `json:"transaction,omitempty"`
}

// ImportDocumentRequest carries the raw text of a statement or receipt.
type ImportDocumentRequest struct {
	Document string `json:"document" binding:"required"`
}

type ImportDocumentResponse struct {
	Imported []TransactionResponse `json:"imported"`
	Skipped  int                   `json:"skipped"`
}

type AdviceRequest struct {
	Question string `json:"question"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}
