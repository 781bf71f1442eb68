// Package gcs stores ledger snapshots as JSON objects in a Google Cloud Storage bucket,
// one object per user.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portsrepo "github.com/SscSPs/six_jars_app/internal/core/ports/repositories"
)

const objectPrefix = "ledgers"

// SnapshotRepository reads and writes ledgers/<id>.json snapshot objects.
type SnapshotRepository struct {
	client *storage.Client
	bucket string
}

var _ portsrepo.SnapshotRepositoryFacade = (*SnapshotRepository)(nil)

// NewSnapshotRepository opens a storage client using Application Default Credentials.
// Close releases it.
func NewSnapshotRepository(ctx context.Context, bucket string) (*SnapshotRepository, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket name cannot be empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &SnapshotRepository{client: client, bucket: bucket}, nil
}

// NewRepositoryProvider wraps the repository for the service layer.
func NewRepositoryProvider(repo *SnapshotRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{SnapshotRepo: repo}
}

// ObjectName returns where a user's snapshot lives in the bucket.
func ObjectName(userID string) string {
	return path.Join(objectPrefix, userID+".json")
}

func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	rc, err := r.client.Bucket(r.bucket).Object(ObjectName(userID)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot object: %w", err)
	}
	return &snap, nil
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, userID string, snap domain.Snapshot) error {
	w := r.client.Bucket(r.bucket).Object(ObjectName(userID)).NewWriter(ctx)
	w.ContentType = "application/json"

	if err := json.NewEncoder(w).Encode(snap); err != nil {
		_ = w.Close()
		return fmt.Errorf("write snapshot object: %w", err)
	}
	// Close finalizes the upload.
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize snapshot upload: %w", err)
	}
	return nil
}

// Close releases the storage client.
func (r *SnapshotRepository) Close() error {
	return r.client.Close()
}
