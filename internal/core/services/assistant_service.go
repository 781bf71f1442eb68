package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
)

// recentContextSize is how many recent transactions accompany a parse request.
const recentContextSize = 5

// assistantService connects the generative model to the ledger. Model calls run outside
// the session lock; only the resulting writes take it.
type assistantService struct {
	BaseService
	gateway gateways.AssistantGateway
}

// NewAssistantService creates the AI assistant service.
func NewAssistantService(sessions *SessionStore, gateway gateways.AssistantGateway, opts ...ServiceOption) portssvc.AssistantSvc {
	return &assistantService{
		BaseService: newBaseService(sessions, opts...),
		gateway:     gateway,
	}
}

var _ portssvc.AssistantSvc = (*assistantService)(nil)

func (s *assistantService) ParseAndRecord(ctx context.Context, id domain.Identity, text string) (*portssvc.ParseResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message is empty", apperrors.ErrValidation)
	}

	var recent []domain.Transaction
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		recent = b.RecentTransactions(recentContextSize)
		return nil
	}); err != nil {
		return nil, err
	}

	parsed, err := s.gateway.ParseTransaction(ctx, text, recent)
	if err != nil {
		s.LogError(ctx, err, "AI parse failed", slog.String("user_id", id.UserID))
		return nil, err
	}
	if parsed == nil {
		return nil, fmt.Errorf("%w: empty parse result", apperrors.ErrAIParse)
	}

	result := &portssvc.ParseResult{Parsed: *parsed}
	if parsed.Action != gateways.ActionAdd || !parsed.Amount.IsPositive() {
		s.LogDebug(ctx, "AI parse produced no transaction", slog.String("action", string(parsed.Action)))
		return result, nil
	}

	in := domain.TransactionInput{
		Type:        domain.Income,
		Amount:      parsed.Amount,
		Description: parsed.Description,
		JarType:     s.jarOrAuto(ctx, parsed.JarType),
		Timestamp:   s.Now(),
	}
	if parsed.IsExpense {
		in.Type = domain.Expense
	}
	if strings.TrimSpace(in.Description) == "" {
		in.Description = text
	}

	var txn domain.Transaction
	if err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		txn, err = b.AddTransaction(in)
		return err
	}); err != nil {
		s.LogError(ctx, err, "Failed to record parsed transaction", slog.String("user_id", id.UserID))
		return nil, err
	}
	result.Transaction = &txn
	s.LogInfo(ctx, "Recorded transaction from message",
		slog.String("user_id", id.UserID),
		slog.String("transaction_id", txn.ID))
	return result, nil
}

func (s *assistantService) ImportDocument(ctx context.Context, id domain.Identity, document string) (*portssvc.ImportResult, error) {
	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("%w: document is empty", apperrors.ErrValidation)
	}

	entries, err := s.gateway.ExtractTransactions(ctx, document)
	if err != nil {
		s.LogError(ctx, err, "AI document extraction failed", slog.String("user_id", id.UserID))
		return nil, err
	}

	result := &portssvc.ImportResult{Imported: []domain.Transaction{}}
	inputs := make([]domain.TransactionInput, 0, len(entries))
	for _, e := range entries {
		in, ok := s.entryInput(e)
		if !ok {
			result.Skipped++
			continue
		}
		inputs = append(inputs, in)
	}

	if err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		for _, in := range inputs {
			txn, err := b.AddTransaction(in)
			if err != nil {
				result.Skipped++
				continue
			}
			result.Imported = append(result.Imported, txn)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Imported document",
		slog.String("user_id", id.UserID),
		slog.Int("imported", len(result.Imported)),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

func (s *assistantService) Advice(ctx context.Context, id domain.Identity, question string) (string, error) {
	req := gateways.AdviceRequest{Question: strings.TrimSpace(question)}
	now := s.Now()
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		settings := b.Settings()
		req.Language = settings.Language
		req.Currency = settings.Currency
		req.Summary = b.Summary()
		req.Series = b.Series(domain.PeriodMonth, now)
		return nil
	}); err != nil {
		return "", err
	}

	advice, err := s.gateway.Advise(ctx, req)
	if err != nil {
		s.LogError(ctx, err, "AI advice failed", slog.String("user_id", id.UserID))
		return "", err
	}
	return advice, nil
}

// entryInput turns an extracted entry into a transaction input, reporting false for
// entries that cannot be recorded.
func (s *assistantService) entryInput(e gateways.ParsedEntry) (domain.TransactionInput, bool) {
	txType := domain.TransactionType(strings.ToLower(strings.TrimSpace(e.Type)))
	if !txType.IsValid() || !e.Amount.IsPositive() || strings.TrimSpace(e.Description) == "" {
		return domain.TransactionInput{}, false
	}
	jar, err := domain.ParseJarTarget(strings.ToUpper(strings.TrimSpace(e.JarType)))
	if err != nil {
		return domain.TransactionInput{}, false
	}
	in := domain.TransactionInput{
		Type:        txType,
		Amount:      e.Amount,
		Description: e.Description,
		JarType:     jar,
		Timestamp:   s.Now(),
	}
	if e.Timestamp != nil && !e.Timestamp.IsZero() {
		in.Timestamp = *e.Timestamp
	}
	return in, true
}

// jarOrAuto maps the model's jar code to a jar, falling back to AUTO for codes it made up.
func (s *assistantService) jarOrAuto(ctx context.Context, code string) *domain.JarType {
	jar, err := domain.ParseJarTarget(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		s.LogDebug(ctx, "Model returned unknown jar, using AUTO", slog.String("jar", code))
		return nil
	}
	return jar
}
