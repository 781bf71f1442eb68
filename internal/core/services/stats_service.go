package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
)

// statsService serves the read-only dashboard aggregates.
type statsService struct {
	BaseService
}

// NewStatsService creates the statistics service. The clock's location decides
// calendar buckets.
func NewStatsService(sessions *SessionStore, opts ...ServiceOption) portssvc.StatsSvc {
	return &statsService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.StatsSvc = (*statsService)(nil)

func (s *statsService) Summary(ctx context.Context, id domain.Identity) (*domain.LedgerSummary, error) {
	var summary domain.LedgerSummary
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		summary = b.Summary()
		return nil
	}); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *statsService) Series(ctx context.Context, id domain.Identity, period domain.StatsPeriod) ([]domain.SeriesBucket, error) {
	if !period.IsValid() {
		return nil, fmt.Errorf("%w: unknown period %q", apperrors.ErrValidation, period)
	}
	now := s.Now()
	var series []domain.SeriesBucket
	err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		series = b.Series(period, now)
		return nil
	})
	return series, err
}
