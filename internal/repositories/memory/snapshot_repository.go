// Package memory holds snapshots in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portsrepo "github.com/SscSPs/six_jars_app/internal/core/ports/repositories"
)

type SnapshotRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

var _ portsrepo.SnapshotRepositoryFacade = (*SnapshotRepository)(nil)

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{store: make(map[string][]byte)}
}

func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{SnapshotRepo: NewSnapshotRepository()}
}

// Snapshots are stored encoded so callers never share slices or maps with the store.

func (r *SnapshotRepository) LoadSnapshot(_ context.Context, userID string) (*domain.Snapshot, error) {
	r.mu.RLock()
	data, ok := r.store[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

func (r *SnapshotRepository) SaveSnapshot(_ context.Context, userID string, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	r.mu.Lock()
	r.store[userID] = data
	r.mu.Unlock()
	return nil
}
