package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propledger/backend/internal/domain/shared"
)

// GormLifecycleRepository provides the soft-delete lifecycle operations shared
// by all entity repositories. Concrete repositories embed it and add their
// entity-specific queries.
type GormLifecycleRepository[T any] struct {
	db *gorm.DB
}

var _ shared.LifecycleRepository[struct{}] = (*GormLifecycleRepository[struct{}])(nil)

// NewGormLifecycleRepository creates a lifecycle repository for entity type T
func NewGormLifecycleRepository[T any](db *gorm.DB) *GormLifecycleRepository[T] {
	return &GormLifecycleRepository[T]{db: db}
}

// DB exposes the underlying connection to embedding repositories
func (r *GormLifecycleRepository[T]) DB() *gorm.DB {
	return r.db
}

// FindByID retrieves a live entity by ID
func (r *GormLifecycleRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	return &row, nil
}

// FindByIDUnscoped retrieves an entity by ID regardless of deletion state
func (r *GormLifecycleRepository[T]) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	return &row, nil
}

// FindAllLive retrieves all live entities. The result is never nil so callers
// can serialize it as an empty JSON array.
func (r *GormLifecycleRepository[T]) FindAllLive(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return rows, nil
}

// FindDeleted retrieves soft-deleted entities, most recently deleted first
func (r *GormLifecycleRepository[T]) FindDeleted(ctx context.Context, page, pageSize int) ([]T, int64, error) {
	base := r.db.WithContext(ctx).Unscoped().Model(new(T)).Where("deleted_at IS NOT NULL")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deleted records: %w", err)
	}

	rows := make([]T, 0)
	err := base.
		Order("deleted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deleted records: %w", err)
	}
	return rows, total, nil
}

// CountLive returns the number of live entities
func (r *GormLifecycleRepository[T]) CountLive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// SoftDelete marks a live entity as deleted. The update is conditional on the
// row still being live, so concurrent deletes cannot both succeed.
func (r *GormLifecycleRepository[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to soft delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id, shared.ErrAlreadyDeleted)
	}
	return nil
}

// Restore clears the deletion mark on a soft-deleted entity. The update is
// conditional on the row actually being deleted.
func (r *GormLifecycleRepository[T]) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return fmt.Errorf("failed to restore record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id, shared.ErrNotDeleted)
	}
	return nil
}

// classifyMiss distinguishes "row does not exist" from "row exists but is in
// the wrong deletion state" after a conditional update touched zero rows.
func (r *GormLifecycleRepository[T]) classifyMiss(ctx context.Context, id uuid.UUID, stateErr error) error {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(new(T)).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check record existence: %w", err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return stateErr
}

// InsertBatch inserts rows in chunks inside the current connection or
// transaction
func (r *GormLifecycleRepository[T]) InsertBatch(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}
	return nil
}
