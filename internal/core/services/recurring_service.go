package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
)

type recurringService struct {
	BaseService
}

// NewRecurringService creates the recurring template service.
func NewRecurringService(sessions *SessionStore, opts ...ServiceOption) portssvc.RecurringSvcFacade {
	return &recurringService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

func (s *recurringService) ListTemplates(ctx context.Context, id domain.Identity) ([]domain.RecurringTemplate, error) {
	var templates []domain.RecurringTemplate
	err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		templates = b.RecurringTemplates()
		return nil
	})
	return templates, err
}

func (s *recurringService) CreateTemplate(ctx context.Context, id domain.Identity, in domain.RecurringTemplateInput) (*domain.RecurringTemplate, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var tpl domain.RecurringTemplate
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		tpl, err = b.AddRecurring(in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create recurring template", slog.String("user_id", id.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Recurring template created",
		slog.String("user_id", id.UserID),
		slog.String("template_id", tpl.ID),
		slog.String("subscription", string(tpl.SubscriptionType)))
	return &tpl, nil
}

func (s *recurringService) UpdateTemplate(ctx context.Context, id domain.Identity, templateID string, in domain.RecurringTemplateInput) (*domain.RecurringTemplate, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var (
		tpl   domain.RecurringTemplate
		found bool
	)
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		tpl, found, err = b.UpdateRecurring(templateID, in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update recurring template", slog.String("template_id", templateID))
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &tpl, nil
}

func (s *recurringService) DeleteTemplate(ctx context.Context, id domain.Identity, templateID string) error {
	return s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		if b.DeleteRecurring(templateID) {
			s.LogInfo(ctx, "Recurring template deleted", slog.String("template_id", templateID))
		}
		return nil
	})
}

func (s *recurringService) Materialize(ctx context.Context, id domain.Identity, templateID string) (*domain.Transaction, error) {
	at := s.Now()
	var txn domain.Transaction
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		txn, err = b.MaterializeRecurring(templateID, at)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to materialize recurring template",
			slog.String("user_id", id.UserID),
			slog.String("template_id", templateID))
		return nil, err
	}
	s.LogInfo(ctx, "Recurring template materialized",
		slog.String("template_id", templateID),
		slog.String("transaction_id", txn.ID))
	return &txn, nil
}
