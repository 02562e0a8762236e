// Package settings holds the two key-value tables of the store. Unlike every
// other collection they carry no soft-delete lifecycle: restore hard-clears
// and recreates them wholesale.
package settings

import (
	"context"
	"time"
)

// LastBackupDateKey is the settings key recording when the most recent
// snapshot was taken, stored as RFC 3339.
const LastBackupDateKey = "last_backup_date"

// Setting is a single application setting row
type Setting struct {
	Key       string    `gorm:"type:varchar(200);primary_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// KeyVal is a single free-form key-value row
type KeyVal struct {
	Key       string    `gorm:"type:varchar(200);primary_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName returns the table name for GORM
func (KeyVal) TableName() string {
	return "keyval"
}

// SettingRepository provides access to the settings table
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	FindAll(ctx context.Context) ([]Setting, error)
	Count(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, rows []Setting) error
}

// KeyValRepository provides access to the keyval table
type KeyValRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	FindAll(ctx context.Context) ([]KeyVal, error)
	Count(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, rows []KeyVal) error
}
