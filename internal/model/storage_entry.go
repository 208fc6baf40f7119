package model

import "time"

// StorageEntry is one key of the client-side storage analogue. Values are opaque
// strings, usually JSON documents.
type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
