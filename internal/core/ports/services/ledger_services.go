package services

import (
	"context"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
)

// TransactionReaderSvc defines read operations on the transaction ledger.
type TransactionReaderSvc interface {
	// ListTransactions returns one page of the ledger, most recent first, and the token of
	// the next page ("" on the last page). limit <= 0 returns everything after the token.
	ListTransactions(ctx context.Context, id domain.Identity, limit int, pageToken string) ([]domain.Transaction, string, error)

	// GetTransaction returns one transaction or ErrNotFound.
	GetTransaction(ctx context.Context, id domain.Identity, txID string) (*domain.Transaction, error)

	// GetBalances returns the current jar balances.
	GetBalances(ctx context.Context, id domain.Identity) (domain.JarBalance, error)

	// Reconcile replays every transaction and reports whether the balances still match.
	Reconcile(ctx context.Context, id domain.Identity) (domain.JarBalance, bool, error)
}

// TransactionWriterSvc defines write operations on the transaction ledger.
type TransactionWriterSvc interface {
	// AddTransaction records a user-authored transaction.
	AddTransaction(ctx context.Context, id domain.Identity, in domain.TransactionInput) (*domain.Transaction, error)

	// EditTransaction replaces a transaction. An unknown id returns (nil, nil).
	EditTransaction(ctx context.Context, id domain.Identity, txID string, in domain.TransactionInput) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and any sibling that must go with it.
	// An unknown id removes nothing and is not an error.
	DeleteTransaction(ctx context.Context, id domain.Identity, txID string) ([]domain.Transaction, error)
}

// LedgerSvcFacade combines all transaction ledger operations.
type LedgerSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// TransferSvc moves money between jars.
type TransferSvc interface {
	Transfer(ctx context.Context, id domain.Identity, req ledger.TransferRequest) ([]domain.Transaction, error)
}

// LoanSvcFacade defines loan operations.
type LoanSvcFacade interface {
	ListLoans(ctx context.Context, id domain.Identity) ([]domain.Loan, error)
	GetLoan(ctx context.Context, id domain.Identity, loanID string) (*domain.Loan, []domain.Transaction, error)
	CreateLoan(ctx context.Context, id domain.Identity, in domain.LoanInput) (*domain.Loan, error)
	// EditLoan returns (nil, nil) for an unknown loan.
	EditLoan(ctx context.Context, id domain.Identity, loanID string, in domain.LoanInput) (*domain.Loan, error)
	PayLoan(ctx context.Context, id domain.Identity, loanID string, p domain.LoanPayment) (*domain.Loan, *domain.Transaction, error)
	DeleteLoan(ctx context.Context, id domain.Identity, loanID string) ([]domain.Transaction, error)
}

// RecurringSvcFacade defines recurring template operations.
type RecurringSvcFacade interface {
	ListTemplates(ctx context.Context, id domain.Identity) ([]domain.RecurringTemplate, error)
	CreateTemplate(ctx context.Context, id domain.Identity, in domain.RecurringTemplateInput) (*domain.RecurringTemplate, error)
	// UpdateTemplate returns (nil, nil) for an unknown template.
	UpdateTemplate(ctx context.Context, id domain.Identity, templateID string, in domain.RecurringTemplateInput) (*domain.RecurringTemplate, error)
	DeleteTemplate(ctx context.Context, id domain.Identity, templateID string) error
	// Materialize emits one transaction from the template, stamped now.
	Materialize(ctx context.Context, id domain.Identity, templateID string) (*domain.Transaction, error)
}

// GroupSvcFacade defines event and future group operations.
type GroupSvcFacade interface {
	ListGroups(ctx context.Context, id domain.Identity, kind domain.GroupKind) ([]domain.StagedGroup, error)
	GetGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string) (*domain.StagedGroup, error)
	CreateGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, in domain.GroupInput) (*domain.StagedGroup, error)
	AddEntry(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string, in domain.TransactionInput) (*domain.Transaction, error)
	RemoveEntry(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID, entryID string) error
	DiscardGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string) error
	// Commit consumes the group and pushes its effect into the ledger.
	Commit(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string, target *domain.JarType) (*domain.CommittedGroup, error)
}

// StatsSvc defines read-only aggregates.
type StatsSvc interface {
	Summary(ctx context.Context, id domain.Identity) (*domain.LedgerSummary, error)
	Series(ctx context.Context, id domain.Identity, period domain.StatsPeriod) ([]domain.SeriesBucket, error)
}

// SettingsSvcFacade defines user preference operations.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context, id domain.Identity) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, id domain.Identity, u domain.SettingsUpdate) (*domain.Settings, error)
	UpdateRatios(ctx context.Context, id domain.Identity, ratios domain.JarRatios) (domain.JarRatios, error)
	SetPIN(ctx context.Context, id domain.Identity, pin string) error
	ClearPIN(ctx context.Context, id domain.Identity) error
	VerifyPIN(ctx context.Context, id domain.Identity, pin string) (bool, error)
}
