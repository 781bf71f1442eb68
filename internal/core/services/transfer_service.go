package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
)

type transferService struct {
	BaseService
}

// NewTransferService creates the jar-to-jar transfer service.
func NewTransferService(sessions *SessionStore, opts ...ServiceOption) portssvc.TransferSvc {
	return &transferService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

// Transfer records both legs of a transfer atomically.
func (s *transferService) Transfer(ctx context.Context, id domain.Identity, req ledger.TransferRequest) ([]domain.Transaction, error) {
	if req.Timestamp.IsZero() {
		req.Timestamp = s.Now()
	}
	var legs []domain.Transaction
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		legs, err = b.Transfer(req)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Transfer failed",
			slog.String("user_id", id.UserID),
			slog.String("from", string(req.From)),
			slog.String("to", string(req.To)))
		return nil, err
	}
	s.LogInfo(ctx, "Transfer recorded",
		slog.String("user_id", id.UserID),
		slog.String("from", string(req.From)),
		slog.String("to", string(req.To)),
		slog.String("amount", req.Amount.String()))
	return legs, nil
}
