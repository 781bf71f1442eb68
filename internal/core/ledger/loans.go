package ledger

import (
	"fmt"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PaymentTolerance is how far a payment may exceed the remaining balance and still be
// accepted; such a payment settles the loan exactly.
var PaymentTolerance = decimal.New(1, -6)

// Loans returns all loans, most recent first.
func (b *Book) Loans() []domain.Loan {
	return append([]domain.Loan(nil), b.loans...)
}

// Loan looks up a loan by id.
func (b *Book) Loan(id string) (domain.Loan, bool) {
	if i := b.loanIndexOf(id); i >= 0 {
		return b.loans[i], true
	}
	return domain.Loan{}, false
}

// LoanTransactions returns every live transaction linked to the loan.
func (b *Book) LoanTransactions(loanID string) []domain.Transaction {
	var out []domain.Transaction
	for _, txn := range b.transactions {
		if _, ok := b.loanIndex[loanID][txn.ID]; ok {
			out = append(out, txn)
		}
	}
	return out
}

// CreateLoan records the loan and its origin transaction: income for a BORROW,
// expense for a LEND.
func (b *Book) CreateLoan(in domain.LoanInput) (domain.Loan, domain.Transaction, error) {
	if err := in.Validate(); err != nil {
		return domain.Loan{}, domain.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	loanID := b.newID()
	origin := b.record(b.originTransaction(b.newID(), loanID, in))
	loan := domain.Loan{
		ID:                  loanID,
		Type:                in.Type,
		LenderName:          in.LenderName,
		Principal:           in.Principal,
		PaidAmount:          decimal.Zero,
		StartDate:           in.StartDate,
		LoanJar:             in.LoanJar,
		Category:            in.Category,
		IsUrgent:            in.IsUrgent,
		Image:               in.Image,
		OriginTransactionID: origin.ID,
	}
	b.loans = append([]domain.Loan{loan}, b.loans...)
	return loan, origin, nil
}

// EditLoan replaces the loan's fields and swaps the origin transaction's effect for the
// new principal, jar and type in one step. An unknown id reports found=false.
func (b *Book) EditLoan(id string, in domain.LoanInput) (domain.Loan, bool, error) {
	li := b.loanIndexOf(id)
	if li < 0 {
		return domain.Loan{}, false, nil
	}
	loan := b.loans[li]

	if err := in.Validate(); err != nil {
		return domain.Loan{}, true, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if in.Principal.LessThan(loan.PaidAmount) {
		return domain.Loan{}, true, fmt.Errorf("%w: principal %s is below the paid amount %s",
			apperrors.ErrValidation, in.Principal.String(), loan.PaidAmount.String())
	}
	if in.Type != loan.Type && b.hasPayments(loan) {
		return domain.Loan{}, true, fmt.Errorf("%w: loan type cannot change once payments exist", apperrors.ErrValidation)
	}

	next := b.captureRatios(b.originTransaction(loan.OriginTransactionID, loan.ID, in))
	if i := b.indexOf(loan.OriginTransactionID); i >= 0 {
		b.apply(b.transactions[i], accounting.Reverse)
		b.transactions[i] = next
		b.apply(next, accounting.Apply)
		b.touch()
	} else {
		next.ID = b.newID()
		next = b.record(next)
	}

	loan.Type = in.Type
	loan.LenderName = in.LenderName
	loan.Principal = in.Principal
	loan.StartDate = in.StartDate
	loan.LoanJar = in.LoanJar
	loan.Category = in.Category
	loan.IsUrgent = in.IsUrgent
	loan.Image = in.Image
	loan.OriginTransactionID = next.ID
	b.loans[li] = loan
	return loan, true, nil
}

// PayLoan records a repayment in the opposite cash direction of the loan and raises its
// paid amount. Payments beyond the remaining balance (plus PaymentTolerance) are refused.
func (b *Book) PayLoan(id string, p domain.LoanPayment) (domain.Loan, domain.Transaction, error) {
	li := b.loanIndexOf(id)
	if li < 0 {
		return domain.Loan{}, domain.Transaction{}, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, id)
	}
	loan := b.loans[li]

	if !p.Amount.IsPositive() {
		return domain.Loan{}, domain.Transaction{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	remaining := loan.Remaining()
	if !remaining.IsPositive() {
		return domain.Loan{}, domain.Transaction{}, fmt.Errorf("%w: loan is already settled", apperrors.ErrValidation)
	}
	amount := p.Amount
	if amount.GreaterThan(remaining.Add(PaymentTolerance)) {
		return domain.Loan{}, domain.Transaction{}, fmt.Errorf("%w: payment %s exceeds remaining balance %s",
			apperrors.ErrValidation, amount.String(), remaining.String())
	}
	if amount.GreaterThan(remaining) {
		amount = remaining
	}

	loanID := loan.ID
	payment := b.record(domain.Transaction{
		ID:          b.newID(),
		Type:        loan.Type.PaymentType(),
		Amount:      amount,
		Description: paymentDescription(loan),
		JarType:     loan.LoanJar,
		Timestamp:   p.Timestamp,
		Note:        p.Note,
		LoanID:      &loanID,
	})

	loan.PaidAmount = loan.PaidAmount.Add(amount)
	if loan.PaidAmount.GreaterThan(loan.Principal) {
		loan.PaidAmount = loan.Principal
	}
	b.loans[li] = loan
	return loan, payment, nil
}

// DeleteLoan reverses and removes the origin transaction and every payment of the loan,
// then the loan itself. An unknown id reports found=false.
func (b *Book) DeleteLoan(id string) ([]domain.Transaction, bool) {
	li := b.loanIndexOf(id)
	if li < 0 {
		return nil, false
	}
	var removed []domain.Transaction
	for txID := range b.loanIndex[id] {
		if txn, ok := b.unrecord(txID); ok {
			removed = append(removed, txn)
		}
	}
	b.loans = append(b.loans[:li], b.loans[li+1:]...)
	b.touch()
	return removed, true
}

func (b *Book) originTransaction(txID, loanID string, in domain.LoanInput) domain.Transaction {
	desc := fmt.Sprintf("Borrowed from %s", in.LenderName)
	if in.Type == domain.Lend {
		desc = fmt.Sprintf("Lent to %s", in.LenderName)
	}
	return domain.Transaction{
		ID:          txID,
		Type:        in.Type.OriginType(),
		Amount:      in.Principal,
		Description: desc,
		JarType:     in.LoanJar,
		Timestamp:   in.StartDate,
		Image:       in.Image,
		LoanID:      &loanID,
	}
}

func paymentDescription(loan domain.Loan) string {
	if loan.Type == domain.Borrow {
		return fmt.Sprintf("Repaid %s", loan.LenderName)
	}
	return fmt.Sprintf("Collected from %s", loan.LenderName)
}

func (b *Book) hasPayments(loan domain.Loan) bool {
	for txID := range b.loanIndex[loan.ID] {
		if txID != loan.OriginTransactionID {
			return true
		}
	}
	return false
}

func (b *Book) loanIndexOf(id string) int {
	for i := range b.loans {
		if b.loans[i].ID == id {
			return i
		}
	}
	return -1
}
