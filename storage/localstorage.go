// Package storage keeps each visitor's local persistent key/value storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/junaidrashid-git/storefront/config"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("storage: key not found")

var log = logger.New("storage")

// Open connects to postgres when DATABASE_URL is set, otherwise to the sqlite file.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=10000")
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// LocalStorage mirrors the browser storage API, scoped per visitor.
type LocalStorage struct {
	db *gorm.DB
}

func NewLocalStorage(db *gorm.DB) *LocalStorage {
	return &LocalStorage{db: db}
}

// GetItem returns ErrNotFound for a missing key.
func (s *LocalStorage) GetItem(ctx context.Context, visitorID, key string) (string, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).
		Where("visitor_id = ? AND storage_key = ?", visitorID, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Items returns every key of the visitor.
func (s *LocalStorage) Items(ctx context.Context, visitorID string) (map[string]string, error) {
	var entries []models.StorageEntry
	if err := s.db.WithContext(ctx).Where("visitor_id = ?", visitorID).Find(&entries).Error; err != nil {
		return nil, err
	}
	items := make(map[string]string, len(entries))
	for _, e := range entries {
		items[e.Key] = e.Value
	}
	return items, nil
}

// SetItem upserts key.
func (s *LocalStorage) SetItem(ctx context.Context, visitorID, key, value string) error {
	entry := models.StorageEntry{VisitorID: visitorID, Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *LocalStorage) RemoveItem(ctx context.Context, visitorID, key string) error {
	return s.db.WithContext(ctx).
		Where("visitor_id = ? AND storage_key = ?", visitorID, key).
		Delete(&models.StorageEntry{}).Error
}

// Clear removes every key of the visitor.
func (s *LocalStorage) Clear(ctx context.Context, visitorID string) error {
	res := s.db.WithContext(ctx).Where("visitor_id = ?", visitorID).Delete(&models.StorageEntry{})
	if res.Error != nil {
		return res.Error
	}
	log.Info("cleared %d keys for visitor %s", res.RowsAffected, visitorID)
	return nil
}
