package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Snapshot is the row persisted by the SQLite backend.
type Snapshot struct {
	Name      string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

// SQLite stores snapshots in a local database file through gorm.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at dsn and migrates the snapshot table.
func OpenSQLite(dsn string) (*SQLite, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("kv: open sqlite: %w", err)
	}
	if err := gdb.AutoMigrate(&Snapshot{}); err != nil {
		if sqlDB, dbErr := gdb.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("kv: migrate sqlite: %w", err)
	}
	return &SQLite{db: gdb}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap.Payload, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	snap := Snapshot{Name: key, Payload: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
