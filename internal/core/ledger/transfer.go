package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// TransferRequest moves money from one jar to another.
type TransferRequest struct {
	From      domain.JarType
	To        domain.JarType
	Amount    decimal.Decimal
	Timestamp time.Time
	Note      *string
}

// Transfer records an expense on the source jar and an income on the destination jar,
// both sharing a new transfer group id. It returns the expense leg first.
func (b *Book) Transfer(req TransferRequest) ([]domain.Transaction, error) {
	if !req.From.IsValid() || !req.To.IsValid() {
		return nil, fmt.Errorf("%w: transfer jars must be valid", apperrors.ErrValidation)
	}
	if req.From == req.To {
		return nil, fmt.Errorf("%w: cannot transfer to the same jar", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if available := b.balances.Get(req.From); req.Amount.GreaterThan(available) {
		return nil, fmt.Errorf("%w: transfer amount %s exceeds %s balance %s",
			apperrors.ErrValidation, req.Amount.String(), req.From, available.String())
	}

	groupID := b.newID()
	out := domain.Transaction{
		ID:              b.newID(),
		Type:            domain.Expense,
		Amount:          req.Amount,
		Description:     fmt.Sprintf("Transfer to %s", req.To),
		JarType:         req.From.Ptr(),
		Timestamp:       req.Timestamp,
		Note:            req.Note,
		TransferGroupID: &groupID,
	}
	in := domain.Transaction{
		ID:              b.newID(),
		Type:            domain.Income,
		Amount:          req.Amount,
		Description:     fmt.Sprintf("Transfer from %s", req.From),
		JarType:         req.To.Ptr(),
		Timestamp:       req.Timestamp,
		Note:            req.Note,
		TransferGroupID: &groupID,
	}

	out = b.record(out)
	in = b.record(in)
	return []domain.Transaction{out, in}, nil
}

// editTransferLeg applies an edit to one transfer leg and mirrors amount, timestamp and
// note onto its sibling so the pair stays balanced. Type and jar are fixed.
func (b *Book) editTransferLeg(old, next domain.Transaction) (domain.Transaction, error) {
	if next.Type != old.Type || next.JarType == nil || old.JarType == nil || *next.JarType != *old.JarType {
		return domain.Transaction{}, fmt.Errorf("%w: type and jar of a transfer cannot be changed", apperrors.ErrValidation)
	}

	var edited domain.Transaction
	for _, legID := range b.transferIndex[*old.TransferGroupID] {
		i := b.indexOf(legID)
		if i < 0 {
			continue
		}
		leg := b.transactions[i]
		b.apply(leg, accounting.Reverse)

		leg.Amount = next.Amount
		leg.Timestamp = next.Timestamp
		leg.Note = next.Note
		if leg.ID == old.ID {
			leg.Description = next.Description
			leg.Image = next.Image
			edited = leg
		}

		b.transactions[i] = leg
		b.apply(leg, accounting.Apply)
	}
	b.touch()
	return edited, nil
}
