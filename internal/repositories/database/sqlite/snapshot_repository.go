// Package sqlite keeps ledger snapshots in a local SQLite file through gorm. It backs
// single-user and development deployments.
package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portsrepo "github.com/SscSPs/six_jars_app/internal/core/ports/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshotRow is the gorm model for one user's snapshot.
type snapshotRow struct {
	UserID           string `gorm:"primaryKey"`
	Snapshot         []byte `gorm:"not null"`
	TransactionCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (snapshotRow) TableName() string { return "ledger_snapshots" }

// Open creates the database file if needed and migrates the snapshot table.
func Open(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}
	return db, nil
}

// SnapshotRepository reads and writes snapshots through gorm.
type SnapshotRepository struct {
	db *gorm.DB
}

var _ portsrepo.SnapshotRepositoryFacade = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func NewRepositoryProvider(db *gorm.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{SnapshotRepo: NewSnapshotRepository(db)}
}

func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	var row snapshotRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot for user %s: %w", userID, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(row.Snapshot, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, userID string, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	row := snapshotRow{
		UserID:           userID,
		Snapshot:         data,
		TransactionCount: len(snap.Transactions),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"snapshot", "transaction_count", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot for user %s: %w", userID, err)
	}
	return nil
}
