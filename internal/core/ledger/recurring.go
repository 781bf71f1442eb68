package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
)

// RecurringTemplates returns every template, most recent first.
func (b *Book) RecurringTemplates() []domain.RecurringTemplate {
	return append([]domain.RecurringTemplate(nil), b.recurring...)
}

// Template looks up a recurring template by id.
func (b *Book) Template(id string) (domain.RecurringTemplate, bool) {
	if i := b.templateIndexOf(id); i >= 0 {
		return b.recurring[i], true
	}
	return domain.RecurringTemplate{}, false
}

// AddRecurring stores a new template. Templates have no balance effect.
func (b *Book) AddRecurring(in domain.RecurringTemplateInput) (domain.RecurringTemplate, error) {
	tpl, err := buildTemplate(b.newID(), in)
	if err != nil {
		return domain.RecurringTemplate{}, err
	}
	b.recurring = append([]domain.RecurringTemplate{tpl}, b.recurring...)
	b.touch()
	return tpl, nil
}

// UpdateRecurring replaces every editable field of a template and recomputes its end date.
// An unknown id reports found=false.
func (b *Book) UpdateRecurring(id string, in domain.RecurringTemplateInput) (domain.RecurringTemplate, bool, error) {
	i := b.templateIndexOf(id)
	if i < 0 {
		return domain.RecurringTemplate{}, false, nil
	}
	tpl, err := buildTemplate(id, in)
	if err != nil {
		return domain.RecurringTemplate{}, true, err
	}
	tpl.LastMaterializedAt = b.recurring[i].LastMaterializedAt
	b.recurring[i] = tpl
	b.touch()
	return tpl, true, nil
}

// DeleteRecurring removes a template. Transactions it already produced stay in the ledger.
func (b *Book) DeleteRecurring(id string) bool {
	i := b.templateIndexOf(id)
	if i < 0 {
		return false
	}
	b.recurring = append(b.recurring[:i], b.recurring[i+1:]...)
	b.touch()
	return true
}

// MaterializeRecurring emits one ledger transaction from an active template. at must lie
// inside [startDate, endDate]; a call past the end date deactivates the template and fails.
func (b *Book) MaterializeRecurring(id string, at time.Time) (domain.Transaction, error) {
	i := b.templateIndexOf(id)
	if i < 0 {
		return domain.Transaction{}, fmt.Errorf("%w: recurring template %s", apperrors.ErrNotFound, id)
	}
	tpl := b.recurring[i]

	if !tpl.IsActive {
		return domain.Transaction{}, fmt.Errorf("%w: recurring template is inactive", apperrors.ErrValidation)
	}
	if at.After(tpl.EndDate) {
		tpl.IsActive = false
		b.recurring[i] = tpl
		b.touch()
		return domain.Transaction{}, fmt.Errorf("%w: recurring template expired on %s",
			apperrors.ErrValidation, tpl.EndDate.Format(time.DateOnly))
	}
	if at.Before(tpl.StartDate) {
		return domain.Transaction{}, fmt.Errorf("%w: recurring template starts on %s",
			apperrors.ErrValidation, tpl.StartDate.Format(time.DateOnly))
	}

	txn := b.record(domain.Transaction{
		ID:          b.newID(),
		Type:        tpl.Type,
		Amount:      tpl.Amount,
		Description: tpl.Description,
		JarType:     tpl.JarType,
		Timestamp:   at,
	})

	materialized := at
	tpl.LastMaterializedAt = &materialized
	b.recurring[i] = tpl
	return txn, nil
}

func buildTemplate(id string, in domain.RecurringTemplateInput) (domain.RecurringTemplate, error) {
	if err := in.Validate(); err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	end, err := in.SubscriptionType.EndDate(in.StartDate)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return domain.RecurringTemplate{
		ID:               id,
		Amount:           in.Amount,
		Description:      in.Description,
		JarType:          in.JarType,
		Type:             in.Type,
		SubscriptionType: in.SubscriptionType,
		StartDate:        in.StartDate,
		EndDate:          end,
		IsActive:         in.IsActive,
	}, nil
}

func (b *Book) templateIndexOf(id string) int {
	for i := range b.recurring {
		if b.recurring[i].ID == id {
			return i
		}
	}
	return -1
}
