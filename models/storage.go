package models

import "time"

// StorageEntry is one key of a visitor's local persistent storage.
type StorageEntry struct {
	ID        uint   `gorm:"primaryKey"`
	VisitorID string `gorm:"uniqueIndex:idx_visitor_key;not null"`
	Key       string `gorm:"column:storage_key;uniqueIndex:idx_visitor_key;not null"`
	Value     string
	UpdatedAt time.Time
}
