package lifecycle

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// CollectionStore is the type-erased view of one soft-deletable collection.
// The manager dispatches on an entity-type tag at runtime, so it cannot hold
// the typed generic repositories directly; each repository is wrapped once at
// wiring time via AsCollectionStore.
type CollectionStore interface {
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ListDeleted(ctx context.Context, page, pageSize int) ([]any, int64, error)
	CountLive(ctx context.Context) (int64, error)
}

// Registry maps every entity type to its collection store. The mapping is
// built once at process start; Lookup on an unregistered type is an error,
// which keeps the supported set closed.
type Registry struct {
	stores map[shared.EntityType]CollectionStore
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{stores: make(map[shared.EntityType]CollectionStore)}
}

// Register binds an entity type to its collection store
func (r *Registry) Register(entityType shared.EntityType, store CollectionStore) {
	r.stores[entityType] = store
}

// Lookup returns the collection store for an entity type
func (r *Registry) Lookup(entityType shared.EntityType) (CollectionStore, error) {
	store, ok := r.stores[entityType]
	if !ok {
		return nil, shared.NewDomainError("UNKNOWN_ENTITY_TYPE", "No collection registered for entity type: "+entityType.String())
	}
	return store, nil
}

type collectionStore[T any] struct {
	repo shared.LifecycleRepository[T]
}

// AsCollectionStore adapts a typed lifecycle repository to the type-erased
// CollectionStore interface.
func AsCollectionStore[T any](repo shared.LifecycleRepository[T]) CollectionStore {
	return collectionStore[T]{repo: repo}
}

func (s collectionStore[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s collectionStore[T]) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}

func (s collectionStore[T]) ListDeleted(ctx context.Context, page, pageSize int) ([]any, int64, error) {
	rows, total, err := s.repo.FindDeleted(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]any, len(rows))
	for i := range rows {
		items[i] = rows[i]
	}
	return items, total, nil
}

func (s collectionStore[T]) CountLive(ctx context.Context) (int64, error) {
	return s.repo.CountLive(ctx)
}
