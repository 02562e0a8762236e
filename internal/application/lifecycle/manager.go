package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Result is the outcome of a lifecycle operation. Guard denials are reported
// here rather than as errors: a denial is a decision, not a failure.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Manager orchestrates the soft-delete state machine for every collection:
// active → soft-deleted (guard permitting) → restored. It mutates exactly one
// row per call; audit logging is the caller's concern.
type Manager struct {
	guard    *Guard
	registry *Registry
	logger   *zap.Logger
}

// NewManager creates a new lifecycle Manager
func NewManager(guard *Guard, registry *Registry, logger *zap.Logger) *Manager {
	return &Manager{
		guard:    guard,
		registry: registry,
		logger:   logger,
	}
}

// SoftDelete consults the guard and, on approval, marks the row deleted with
// a conditional single-row update. If the guard denies, nothing is mutated
// and the verdict's reason is returned. The actor tag is only logged.
func (m *Manager) SoftDelete(ctx context.Context, entityType shared.EntityType, id uuid.UUID, actor string) (Result, error) {
	store, err := m.registry.Lookup(entityType)
	if err != nil {
		return Result{}, err
	}

	verdict := m.guard.CanDelete(ctx, entityType, id)
	if !verdict.Allowed {
		return Result{Success: false, Message: verdict.Reason}, nil
	}

	if err := store.SoftDelete(ctx, id); err != nil {
		return Result{}, err
	}

	m.logger.Info("entity soft-deleted",
		zap.String("entity_type", entityType.String()),
		zap.String("id", id.String()),
		zap.String("actor", actor),
	)
	return Result{Success: true, Message: fmt.Sprintf("%s deleted", entityType)}, nil
}

// Restore clears the deletion flag with a conditional single-row update.
// A missing row yields ErrNotFound; a row that is not deleted yields
// ErrNotDeleted and stays untouched.
func (m *Manager) Restore(ctx context.Context, entityType shared.EntityType, id uuid.UUID) (Result, error) {
	store, err := m.registry.Lookup(entityType)
	if err != nil {
		return Result{}, err
	}

	if err := store.Restore(ctx, id); err != nil {
		return Result{}, err
	}

	m.logger.Info("entity restored",
		zap.String("entity_type", entityType.String()),
		zap.String("id", id.String()),
	)
	return Result{Success: true, Message: fmt.Sprintf("%s restored", entityType)}, nil
}

// ListSoftDeleted returns a page of soft-deleted rows for one collection,
// most recently deleted first.
func (m *Manager) ListSoftDeleted(ctx context.Context, entityType shared.EntityType, page, pageSize int) (shared.Paginated[any], error) {
	store, err := m.registry.Lookup(entityType)
	if err != nil {
		return shared.Paginated[any]{}, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := store.ListDeleted(ctx, page, pageSize)
	if err != nil {
		return shared.Paginated[any]{}, err
	}
	return shared.NewPaginated(rows, total, page, pageSize), nil
}
