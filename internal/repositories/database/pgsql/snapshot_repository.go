package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portsrepo "github.com/SscSPs/six_jars_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSnapshotRepository stores one jsonb ledger snapshot per user.
type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(db *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{BaseRepository{Pool: db}}
}

// Ensure PgxSnapshotRepository implements portsrepo.SnapshotRepositoryFacade
var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

func (r *PgxSnapshotRepository) LoadSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	query := `SELECT snapshot FROM ledger_snapshots WHERE user_id = $1;`

	var data []byte
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot for user %s: %w", userID, err)
	}
	return decodeSnapshot(data)
}

func (r *PgxSnapshotRepository) SaveSnapshot(ctx context.Context, userID string, snap domain.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO ledger_snapshots (user_id, snapshot, transaction_count, created_at, last_updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            snapshot = EXCLUDED.snapshot,
            transaction_count = EXCLUDED.transaction_count,
            last_updated_at = EXCLUDED.last_updated_at;
    `
	if _, err := r.Pool.Exec(ctx, query, userID, data, len(snap.Transactions)); err != nil {
		return fmt.Errorf("failed to save snapshot for user %s: %w", userID, err)
	}
	return nil
}
