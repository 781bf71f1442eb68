package gemini

import (
	"context"
	"fmt"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
)

// Disabled stands in for the gateway when no API key is configured. Every call fails
// with ErrExternal so the rest of the API keeps working.
type Disabled struct{}

var _ gateways.AssistantGateway = Disabled{}

var errDisabled = fmt.Errorf("%w: assistant is not configured", apperrors.ErrExternal)

func (Disabled) ParseTransaction(context.Context, string, []domain.Transaction) (*gateways.ParsedTransaction, error) {
	return nil, errDisabled
}

func (Disabled) ExtractTransactions(context.Context, string) ([]gateways.ParsedEntry, error) {
	return nil, errDisabled
}

func (Disabled) Advise(context.Context, gateways.AdviceRequest) (string, error) {
	return "", errDisabled
}
