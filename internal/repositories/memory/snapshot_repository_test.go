package memory

import (
	"context"
	"testing"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_IsolatesCallers(t *testing.T) {
	repo := NewSnapshotRepository()
	ctx := context.Background()

	snap := domain.Snapshot{Balances: domain.JarBalance{domain.JarGive: decimal.NewFromInt(5)}}
	require.NoError(t, repo.SaveSnapshot(ctx, "u", snap))

	// Mutating the caller's copy must not reach the store.
	snap.Balances[domain.JarGive] = decimal.NewFromInt(999)

	loaded, err := repo.LoadSnapshot(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Balances[domain.JarGive].Equal(decimal.NewFromInt(5)))

	missing, err := repo.LoadSnapshot(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
