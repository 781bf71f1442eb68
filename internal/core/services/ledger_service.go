package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/utils/pagination"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
}

// NewLedgerService creates the transaction ledger service.
func NewLedgerService(sessions *SessionStore, opts ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListTransactions(ctx context.Context, id domain.Identity, limit int, pageToken string) ([]domain.Transaction, string, error) {
	var all []domain.Transaction
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		all = b.Transactions()
		return nil
	}); err != nil {
		return nil, "", err
	}

	start := 0
	if pageToken != "" {
		cursorID, cursorTS, err := pagination.DecodeCursor(pageToken)
		if err != nil {
			s.LogError(ctx, err, "Invalid transaction page token")
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		start = resumeIndex(all, cursorID, cursorTS)
	}

	page := all[start:]
	next := ""
	if limit > 0 && len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		next = pagination.EncodeCursor(last.ID, last.Timestamp)
	}

	s.LogDebug(ctx, "Listed transactions",
		slog.String("user_id", id.UserID),
		slog.Int("count", len(page)),
		slog.Bool("has_more", next != ""))
	return page, next, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, id domain.Identity, txID string) (*domain.Transaction, error) {
	var (
		txn   domain.Transaction
		found bool
	)
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		txn, found = b.Transaction(txID)
		return nil
	}); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txID)
	}
	return &txn, nil
}

func (s *ledgerService) GetBalances(ctx context.Context, id domain.Identity) (domain.JarBalance, error) {
	var balances domain.JarBalance
	err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		balances = b.Balances()
		return nil
	})
	return balances, err
}

func (s *ledgerService) Reconcile(ctx context.Context, id domain.Identity) (domain.JarBalance, bool, error) {
	var (
		replayed domain.JarBalance
		ok       bool
	)
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		replayed, ok = b.Reconcile()
		return nil
	}); err != nil {
		return nil, false, err
	}
	if !ok {
		s.GetLogger(ctx).Warn("Jar balances drifted from transaction history", slog.String("user_id", id.UserID))
	}
	return replayed, ok, nil
}

func (s *ledgerService) AddTransaction(ctx context.Context, id domain.Identity, in domain.TransactionInput) (*domain.Transaction, error) {
	if in.Timestamp.IsZero() {
		in.Timestamp = s.Now()
	}
	var txn domain.Transaction
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		txn, err = b.AddTransaction(in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add transaction", slog.String("user_id", id.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction added",
		slog.String("user_id", id.UserID),
		slog.String("transaction_id", txn.ID),
		slog.String("type", string(txn.Type)),
		slog.String("jar", domain.JarLabel(txn.JarType)))
	return &txn, nil
}

func (s *ledgerService) EditTransaction(ctx context.Context, id domain.Identity, txID string, in domain.TransactionInput) (*domain.Transaction, error) {
	var (
		txn   domain.Transaction
		found bool
	)
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		// An edit without a timestamp keeps the original one.
		if old, ok := b.Transaction(txID); ok && in.Timestamp.IsZero() {
			in.Timestamp = old.Timestamp
		}
		var err error
		txn, found, err = b.EditTransaction(txID, in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to edit transaction",
			slog.String("user_id", id.UserID),
			slog.String("transaction_id", txID))
		return nil, err
	}
	if !found {
		s.LogDebug(ctx, "Edit of unknown transaction ignored", slog.String("transaction_id", txID))
		return nil, nil
	}
	s.LogInfo(ctx, "Transaction edited", slog.String("user_id", id.UserID), slog.String("transaction_id", txID))
	return &txn, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, id domain.Identity, txID string) ([]domain.Transaction, error) {
	var removed []domain.Transaction
	if err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		removed = b.DeleteTransaction(txID)
		return nil
	}); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Transaction deleted",
		slog.String("user_id", id.UserID),
		slog.String("transaction_id", txID),
		slog.Int("removed", len(removed)))
	return removed, nil
}
