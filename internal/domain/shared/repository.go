package shared

import (
	"context"

	"github.com/google/uuid"
)

// LifecycleRepository is the base interface for every soft-deletable
// collection. Live reads exclude soft-deleted rows; FindByIDUnscoped and
// FindDeleted look past the deletion flag.
//
// SoftDelete and Restore are conditional single-row updates: SoftDelete only
// touches a live row, Restore only a deleted one. A zero-row update is
// reported as ErrAlreadyDeleted / ErrNotDeleted respectively (or ErrNotFound
// when the row does not exist at all), so a concurrent delete/restore on the
// same id can never be silently absorbed as a success.
type LifecycleRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*T, error)
	FindAllLive(ctx context.Context) ([]T, error)
	FindDeleted(ctx context.Context, page, pageSize int) ([]T, int64, error)
	CountLive(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	InsertBatch(ctx context.Context, rows []T) error
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
