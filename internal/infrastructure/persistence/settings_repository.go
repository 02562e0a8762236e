package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propledger/backend/internal/domain/settings"
	"github.com/propledger/backend/internal/domain/shared"
)

// GormSettingRepository implements settings.SettingRepository
type GormSettingRepository struct {
	db *gorm.DB
}

var _ settings.SettingRepository = (*GormSettingRepository)(nil)

// NewGormSettingRepository creates a settings repository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Get retrieves the value stored under key
func (r *GormSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var row settings.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return row.Value, nil
}

// Set stores value under key, inserting or updating as needed
func (r *GormSettingRepository) Set(ctx context.Context, key, value string) error {
	row := settings.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// FindAll retrieves every settings row. The result is never nil.
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	rows := make([]settings.Setting, 0)
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return rows, nil
}

// Count returns the number of settings rows
func (r *GormSettingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&settings.Setting{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count settings: %w", err)
	}
	return count, nil
}

// InsertBatch inserts settings rows in chunks
func (r *GormSettingRepository) InsertBatch(ctx context.Context, rows []settings.Setting) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}
	return nil
}

// GormKeyValRepository implements settings.KeyValRepository
type GormKeyValRepository struct {
	db *gorm.DB
}

var _ settings.KeyValRepository = (*GormKeyValRepository)(nil)

// NewGormKeyValRepository creates a keyval repository
func NewGormKeyValRepository(db *gorm.DB) *GormKeyValRepository {
	return &GormKeyValRepository{db: db}
}

// Get retrieves the value stored under key
func (r *GormKeyValRepository) Get(ctx context.Context, key string) (string, error) {
	var row settings.KeyVal
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", fmt.Errorf("failed to get keyval: %w", err)
	}
	return row.Value, nil
}

// Set stores value under key, inserting or updating as needed
func (r *GormKeyValRepository) Set(ctx context.Context, key, value string) error {
	row := settings.KeyVal{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set keyval: %w", err)
	}
	return nil
}

// FindAll retrieves every keyval row. The result is never nil.
func (r *GormKeyValRepository) FindAll(ctx context.Context) ([]settings.KeyVal, error) {
	rows := make([]settings.KeyVal, 0)
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list keyvals: %w", err)
	}
	return rows, nil
}

// Count returns the number of keyval rows
func (r *GormKeyValRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&settings.KeyVal{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count keyvals: %w", err)
	}
	return count, nil
}

// InsertBatch inserts keyval rows in chunks
func (r *GormKeyValRepository) InsertBatch(ctx context.Context, rows []settings.KeyVal) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("failed to insert keyvals: %w", err)
	}
	return nil
}
