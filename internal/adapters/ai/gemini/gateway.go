package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

// Models tend to echo dates in whichever of these layouts the source used.
var entryDateLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006", "2006/01/02"}

type rawEntry struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	JarType     string          `json:"jarType"`
	Date        *string         `json:"date"`
}

// ParseTransaction reads one free-text message.
func (g *Gateway) ParseTransaction(ctx context.Context, text string, recent []domain.Transaction) (*gateways.ParsedTransaction, error) {
	raw, err := g.gen.generate(ctx, parseSystemPrompt, parsePrompt(text, recent), true)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini parse call failed", slog.String("error", err.Error()))
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response from model", apperrors.ErrAIParse)
	}

	var parsed gateways.ParsedTransaction
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		g.logger.WarnContext(ctx, "Unreadable Gemini parse response", slog.String("raw", raw))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAIParse, err)
	}
	parsed.Action = gateways.ParseAction(strings.ToLower(strings.TrimSpace(string(parsed.Action))))
	if parsed.Action != gateways.ActionAdd {
		parsed.Action = gateways.ActionIgnore
	}
	parsed.Amount = parsed.Amount.Abs()
	return &parsed, nil
}

// ExtractTransactions pulls the transactions out of a document. Entries are returned as
// the model wrote them; the caller decides which are usable.
func (g *Gateway) ExtractTransactions(ctx context.Context, document string) ([]gateways.ParsedEntry, error) {
	raw, err := g.gen.generate(ctx, extractSystemPrompt, "Document:\n"+document, true)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini extract call failed", slog.String("error", err.Error()))
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response from model", apperrors.ErrAIParse)
	}

	var rows []rawEntry
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAIParse, err)
	}

	entries := make([]gateways.ParsedEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, gateways.ParsedEntry{
			Description: row.Description,
			Amount:      row.Amount,
			Type:        row.Type,
			JarType:     row.JarType,
			Timestamp:   parseEntryDate(row.Date),
		})
	}
	g.logger.DebugContext(ctx, "Gemini extracted entries", slog.Int("count", len(entries)))
	return entries, nil
}

// Advise asks the model for plain-text advice.
func (g *Gateway) Advise(ctx context.Context, req gateways.AdviceRequest) (string, error) {
	raw, err := g.gen.generate(ctx, adviceSystemPrompt, advicePrompt(req), false)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini advice call failed", slog.String("error", err.Error()))
		return "", err
	}
	advice := strings.TrimSpace(raw)
	if advice == "" {
		return "", fmt.Errorf("%w: empty response from model", apperrors.ErrAIParse)
	}
	return advice, nil
}

func parsePrompt(text string, recent []domain.Transaction) string {
	var b strings.Builder
	if len(recent) > 0 {
		b.WriteString("Recent transactions, newest first:\n")
		for _, t := range recent {
			fmt.Fprintf(&b, "- %s %s %s (%s)\n", t.Type, t.Amount.String(), t.Description, domain.JarLabel(t.JarType))
		}
		b.WriteString("\n")
	}
	b.WriteString("Message: ")
	b.WriteString(text)
	return b.String()
}

func advicePrompt(req gateways.AdviceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Answer in language %q. Amounts are in %s.\n\n", req.Language, req.Currency)
	fmt.Fprintf(&b, "Total balance: %s\nDebt: %s\nLent out: %s\nNet worth: %s\n",
		req.Summary.TotalBalance, req.Summary.Debt, req.Summary.Lent, req.Summary.NetWorth)
	fmt.Fprintf(&b, "All-time income: %s, expense: %s\n\nJars:\n", req.Summary.TotalIncome, req.Summary.TotalExpense)
	for _, share := range req.Summary.Distribution {
		fmt.Fprintf(&b, "- %s: %s\n", share.Jar, share.Balance)
	}
	if len(req.Series) > 0 {
		b.WriteString("\nRecent days (income / expense):\n")
		for _, bucket := range req.Series {
			if bucket.Income.IsZero() && bucket.Expense.IsZero() {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s / %s\n", bucket.Label, bucket.Income, bucket.Expense)
		}
	}
	if q := strings.TrimSpace(req.Question); q != "" {
		b.WriteString("\nQuestion: ")
		b.WriteString(q)
	}
	return b.String()
}

func parseEntryDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range entryDateLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return &ts
		}
	}
	return nil
}
