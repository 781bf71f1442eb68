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

// groupService implements the GroupSvcFacade interface for both event and future groups.
type groupService struct {
	BaseService
}

// NewGroupService creates the staging group service.
func NewGroupService(sessions *SessionStore, opts ...ServiceOption) portssvc.GroupSvcFacade {
	return &groupService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.GroupSvcFacade = (*groupService)(nil)

func checkKind(kind domain.GroupKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown group kind %q", apperrors.ErrValidation, kind)
	}
	return nil
}

func (s *groupService) ListGroups(ctx context.Context, id domain.Identity, kind domain.GroupKind) ([]domain.StagedGroup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var groups []domain.StagedGroup
	err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		groups = b.Groups(kind)
		return nil
	})
	return groups, err
}

func (s *groupService) GetGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string) (*domain.StagedGroup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var (
		group domain.StagedGroup
		found bool
	)
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		group, found = b.Group(kind, groupID)
		return nil
	}); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: group %s", apperrors.ErrNotFound, groupID)
	}
	return &group, nil
}

func (s *groupService) CreateGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, in domain.GroupInput) (*domain.StagedGroup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = s.Now()
	}
	var group domain.StagedGroup
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		group, err = b.CreateGroup(kind, in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create group", slog.String("kind", string(kind)))
		return nil, err
	}
	s.LogInfo(ctx, "Group created",
		slog.String("user_id", id.UserID),
		slog.String("kind", string(kind)),
		slog.String("group_id", group.ID))
	return &group, nil
}

func (s *groupService) AddEntry(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string, in domain.TransactionInput) (*domain.Transaction, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = s.Now()
	}
	var entry domain.Transaction
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		entry, err = b.AddEntry(kind, groupID, in)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add group entry", slog.String("group_id", groupID))
		return nil, err
	}
	return &entry, nil
}

func (s *groupService) RemoveEntry(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID, entryID string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		_, err := b.RemoveEntry(kind, groupID, entryID)
		return err
	})
}

func (s *groupService) DiscardGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		if b.DiscardGroup(kind, groupID) {
			s.LogInfo(ctx, "Group discarded", slog.String("kind", string(kind)), slog.String("group_id", groupID))
		}
		return nil
	})
}

// Commit consumes a staged group. Events collapse into at most one net transaction;
// futures turn every entry into its own transaction.
func (s *groupService) Commit(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string, target *domain.JarType) (*domain.CommittedGroup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	at := s.Now()
	var receipt domain.CommittedGroup
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		if kind == domain.EventGroup {
			receipt, err = b.CommitEvent(groupID, target, at)
		} else {
			receipt, err = b.CommitFuture(groupID, target, at)
		}
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to commit group",
			slog.String("kind", string(kind)),
			slog.String("group_id", groupID))
		return nil, err
	}
	s.LogInfo(ctx, "Group committed",
		slog.String("user_id", id.UserID),
		slog.String("kind", string(kind)),
		slog.String("group_id", groupID),
		slog.String("target", domain.JarLabel(target)),
		slog.Int("transactions", len(receipt.Transactions)))
	return &receipt, nil
}
