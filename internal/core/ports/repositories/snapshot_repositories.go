package repositories

import (
	"context"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
)

// SnapshotReader loads persisted ledger state.
type SnapshotReader interface {
	// LoadSnapshot returns the user's last saved snapshot, or nil when the user has never
	// saved one.
	LoadSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error)
}

// SnapshotWriter persists ledger state.
type SnapshotWriter interface {
	// SaveSnapshot replaces the user's stored snapshot.
	SaveSnapshot(ctx context.Context, userID string, snap domain.Snapshot) error
}

// SnapshotRepositoryFacade combines snapshot load and save.
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
