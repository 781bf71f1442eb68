package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
)

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
}

// NewLoanService creates the loan service.
func NewLoanService(sessions *SessionStore, opts ...ServiceOption) portssvc.LoanSvcFacade {
	return &loanService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) ListLoans(ctx context.Context, id domain.Identity) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		loans = b.Loans()
		return nil
	})
	return loans, err
}

// GetLoan returns the loan together with its origin and payment transactions.
func (s *loanService) GetLoan(ctx context.Context, id domain.Identity, loanID string) (*domain.Loan, []domain.Transaction, error) {
	var (
		loan  domain.Loan
		txns  []domain.Transaction
		found bool
	)
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		loan, found = b.Loan(loanID)
		if found {
			txns = b.LoanTransactions(loanID)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	return &loan, txns, nil
}

func (s *loanService) CreateLoan(ctx context.Context, id domain.Identity, in domain.LoanInput) (*domain.Loan, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.StartDate.IsZero() {
		in.StartDate = s.Now()
	}
	var (
		loan   domain.Loan
		origin domain.Transaction
	)
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		loan, origin, err = b.CreateLoan(in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create loan", slog.String("user_id", id.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Loan created",
		slog.String("user_id", id.UserID),
		slog.String("loan_id", loan.ID),
		slog.String("loan_type", string(loan.Type)),
		slog.String("origin_transaction_id", origin.ID))
	return &loan, nil
}

func (s *loanService) EditLoan(ctx context.Context, id domain.Identity, loanID string, in domain.LoanInput) (*domain.Loan, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var (
		loan  domain.Loan
		found bool
	)
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		if old, ok := b.Loan(loanID); ok && in.StartDate.IsZero() {
			in.StartDate = old.StartDate
		}
		var err error
		loan, found, err = b.EditLoan(loanID, in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to edit loan", slog.String("user_id", id.UserID), slog.String("loan_id", loanID))
		return nil, err
	}
	if !found {
		return nil, nil
	}
	s.LogInfo(ctx, "Loan edited", slog.String("user_id", id.UserID), slog.String("loan_id", loanID))
	return &loan, nil
}

func (s *loanService) PayLoan(ctx context.Context, id domain.Identity, loanID string, p domain.LoanPayment) (*domain.Loan, *domain.Transaction, error) {
	if p.Timestamp.IsZero() {
		p.Timestamp = s.Now()
	}
	var (
		loan    domain.Loan
		payment domain.Transaction
	)
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		loan, payment, err = b.PayLoan(loanID, p)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record loan payment",
			slog.String("user_id", id.UserID),
			slog.String("loan_id", loanID),
			slog.String("amount", p.Amount.String()))
		return nil, nil, err
	}
	s.LogInfo(ctx, "Loan payment recorded",
		slog.String("user_id", id.UserID),
		slog.String("loan_id", loanID),
		slog.String("paid", loan.PaidAmount.String()),
		slog.String("status", string(loan.Status())))
	return &loan, &payment, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, id domain.Identity, loanID string) ([]domain.Transaction, error) {
	var removed []domain.Transaction
	if err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		removed, _ = b.DeleteLoan(loanID)
		return nil
	}); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Loan deleted",
		slog.String("user_id", id.UserID),
		slog.String("loan_id", loanID),
		slog.Int("removed_transactions", len(removed)))
	return removed, nil
}
