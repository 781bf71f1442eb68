// Package ledger holds one user's jar ledger in memory: the transaction list, the jar
// balance vector derived from it, and the loan, recurring and staging records that
// produce transactions. Every write keeps balances equal to the sum of the live
// transactions' effects.
//
// A Book is not safe for concurrent use; callers serialize access per user.
package ledger

import (
	"fmt"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is the in-memory ledger of a single user.
type Book struct {
	balances     domain.JarBalance
	transactions []domain.Transaction // most recent first
	loans        []domain.Loan
	recurring    []domain.RecurringTemplate
	events       []domain.StagedGroup
	futures      []domain.StagedGroup
	settings     domain.Settings

	loanIndex     map[string]map[string]struct{} // loanID -> txIDs
	transferIndex map[string][]string            // transferGroupID -> txIDs

	version uint64
	memo    *summaryMemo

	newID func() string
}

// Option configures a Book.
type Option func(*Book)

// WithIDGenerator overrides uuid generation, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(b *Book) {
		b.newID = fn
	}
}

// New returns an empty book with default settings.
func New(opts ...Option) *Book {
	b := &Book{
		balances:      domain.NewJarBalance(),
		settings:      domain.DefaultSettings(),
		loanIndex:     make(map[string]map[string]struct{}),
		transferIndex: make(map[string][]string),
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromSnapshot rebuilds a book from persisted state. A nil snapshot (first run) yields
// an empty book. Missing balances are replayed from the transactions.
func FromSnapshot(snap *domain.Snapshot, opts ...Option) *Book {
	b := New(opts...)
	if snap == nil {
		return b
	}
	if snap.Settings != nil {
		b.settings = *snap.Settings
		b.settings.JarRatios = snap.Settings.JarRatios.Clone()
	}
	if len(b.settings.JarRatios) == 0 {
		b.settings.JarRatios = domain.DefaultJarRatios()
	}
	b.transactions = append(b.transactions, snap.Transactions...)
	b.loans = append(b.loans, snap.Loans...)
	b.recurring = append(b.recurring, snap.RecurringTemplates...)
	for _, g := range snap.Events {
		g.Kind = domain.EventGroup
		b.events = append(b.events, g.Clone())
	}
	for _, g := range snap.FutureGroups {
		g.Kind = domain.FutureGroup
		b.futures = append(b.futures, g.Clone())
	}
	for _, txn := range b.transactions {
		b.index(txn)
	}
	if snap.Balances != nil {
		b.balances = snap.Balances.Clone()
	} else {
		b.balances = accounting.Replay(b.transactions, b.settings.JarRatios)
	}
	return b
}

// Snapshot returns a deep copy of the whole state for persistence.
func (b *Book) Snapshot() domain.Snapshot {
	settings := b.Settings()
	snap := domain.Snapshot{
		Balances:           b.balances.Clone(),
		Transactions:       b.Transactions(),
		Loans:              b.Loans(),
		RecurringTemplates: b.RecurringTemplates(),
		Events:             b.Groups(domain.EventGroup),
		FutureGroups:       b.Groups(domain.FutureGroup),
		Settings:           &settings,
	}
	return snap
}

// Version increases on every write.
func (b *Book) Version() uint64 {
	return b.version
}

// Balances returns a copy of the jar balances.
func (b *Book) Balances() domain.JarBalance {
	return b.balances.Clone()
}

// Settings returns a copy of the settings.
func (b *Book) Settings() domain.Settings {
	s := b.settings
	s.JarRatios = b.settings.JarRatios.Clone()
	return s
}

// Transactions returns the ledger, most recent first.
func (b *Book) Transactions() []domain.Transaction {
	return append([]domain.Transaction(nil), b.transactions...)
}

// RecentTransactions returns at most n of the latest transactions.
func (b *Book) RecentTransactions(n int) []domain.Transaction {
	if n > len(b.transactions) {
		n = len(b.transactions)
	}
	return append([]domain.Transaction(nil), b.transactions[:n]...)
}

// Transaction looks up a transaction by id.
func (b *Book) Transaction(id string) (domain.Transaction, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.transactions[i], true
	}
	return domain.Transaction{}, false
}

// Reconcile replays every live transaction and reports whether the cached balances
// match the result.
func (b *Book) Reconcile() (domain.JarBalance, bool) {
	replayed := accounting.Replay(b.transactions, b.settings.JarRatios)
	return replayed, replayed.Equal(b.balances)
}

// AddTransaction validates and records a user-authored transaction.
func (b *Book) AddTransaction(in domain.TransactionInput) (domain.Transaction, error) {
	txn := in.ToTransaction(b.newID())
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return b.record(txn), nil
}

// EditTransaction replaces a transaction: the old effect is reversed and the new one
// applied. An unknown id is a no-op and reports found=false.
func (b *Book) EditTransaction(id string, in domain.TransactionInput) (domain.Transaction, bool, error) {
	i := b.indexOf(id)
	if i < 0 {
		return domain.Transaction{}, false, nil
	}
	old := b.transactions[i]
	if old.IsLoanLinked() {
		return domain.Transaction{}, true, fmt.Errorf("%w: loan transactions are edited through their loan", apperrors.ErrValidation)
	}

	next := in.ToTransaction(id)
	if err := next.Validate(); err != nil {
		return domain.Transaction{}, true, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if old.IsTransferLeg() {
		edited, err := b.editTransferLeg(old, next)
		return edited, true, err
	}

	b.apply(old, accounting.Reverse)
	next = b.captureRatios(next)
	b.transactions[i] = next
	b.apply(next, accounting.Apply)
	b.touch()
	return next, true, nil
}

// DeleteTransaction removes a transaction and reverses its effect. Deleting one leg of a
// transfer removes both legs; deleting a loan's origin removes the whole loan; deleting a
// loan payment lowers the loan's paid amount. An unknown id is a no-op.
func (b *Book) DeleteTransaction(id string) []domain.Transaction {
	i := b.indexOf(id)
	if i < 0 {
		return nil
	}
	txn := b.transactions[i]

	if txn.IsTransferLeg() {
		var removed []domain.Transaction
		for _, legID := range append([]string(nil), b.transferIndex[*txn.TransferGroupID]...) {
			if leg, ok := b.unrecord(legID); ok {
				removed = append(removed, leg)
			}
		}
		b.touch()
		return removed
	}

	if txn.IsLoanLinked() {
		if li := b.loanIndexOf(*txn.LoanID); li >= 0 {
			loan := b.loans[li]
			if loan.OriginTransactionID == txn.ID {
				removed, _ := b.DeleteLoan(loan.ID)
				return removed
			}
			loan.PaidAmount = loan.PaidAmount.Sub(txn.Amount)
			if loan.PaidAmount.IsNegative() {
				loan.PaidAmount = decimal.Zero
			}
			b.loans[li] = loan
		}
	}

	removed, _ := b.unrecord(id)
	b.touch()
	return []domain.Transaction{removed}
}

// record captures ratios for AUTO transactions, puts txn at the head of the ledger and
// applies its effect.
func (b *Book) record(txn domain.Transaction) domain.Transaction {
	txn = b.captureRatios(txn)
	b.transactions = append([]domain.Transaction{txn}, b.transactions...)
	b.index(txn)
	b.apply(txn, accounting.Apply)
	b.touch()
	return txn
}

// unrecord reverses a transaction's effect and removes it from the ledger and indices.
func (b *Book) unrecord(id string) (domain.Transaction, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return domain.Transaction{}, false
	}
	txn := b.transactions[i]
	b.apply(txn, accounting.Reverse)
	b.transactions = append(b.transactions[:i], b.transactions[i+1:]...)
	b.unindex(txn)
	return txn, true
}

func (b *Book) captureRatios(txn domain.Transaction) domain.Transaction {
	if txn.IsAuto() {
		txn.Ratios = b.settings.JarRatios.Clone()
	} else {
		txn.Ratios = nil
	}
	return txn
}

func (b *Book) apply(txn domain.Transaction, dir accounting.Direction) {
	b.balances = accounting.ApplyDelta(b.balances, txn, dir, b.settings.JarRatios)
}

func (b *Book) touch() {
	b.version++
}

func (b *Book) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range b.transactions {
		if b.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Book) index(txn domain.Transaction) {
	if txn.IsLoanLinked() {
		set, ok := b.loanIndex[*txn.LoanID]
		if !ok {
			set = make(map[string]struct{})
			b.loanIndex[*txn.LoanID] = set
		}
		set[txn.ID] = struct{}{}
	}
	if txn.IsTransferLeg() {
		b.transferIndex[*txn.TransferGroupID] = append(b.transferIndex[*txn.TransferGroupID], txn.ID)
	}
}

func (b *Book) unindex(txn domain.Transaction) {
	if txn.IsLoanLinked() {
		if set, ok := b.loanIndex[*txn.LoanID]; ok {
			delete(set, txn.ID)
			if len(set) == 0 {
				delete(b.loanIndex, *txn.LoanID)
			}
		}
	}
	if txn.IsTransferLeg() {
		gid := *txn.TransferGroupID
		ids := b.transferIndex[gid]
		for i, id := range ids {
			if id == txn.ID {
				ids = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ids) == 0 {
			delete(b.transferIndex, gid)
		} else {
			b.transferIndex[gid] = ids
		}
	}
}
