package lifecycle

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/domain/shared"
)

func newTestManager(t *testing.T, gm *guardMocks) (*Manager, *mockCollectionStore) {
	t.Helper()
	store := new(mockCollectionStore)
	registry := NewRegistry()
	registry.Register(shared.EntityCustomer, store)
	guard := NewGuard(gm.repos(), zap.NewNop())
	return NewManager(guard, registry, zap.NewNop()), store
}

func TestManager_SoftDelete_Success(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByCustomer", ctx, id).Return(int64(0), nil)
	store.On("SoftDelete", ctx, id).Return(nil)

	result, err := manager.SoftDelete(ctx, shared.EntityCustomer, id, "admin")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	store.AssertExpectations(t)
}

func TestManager_SoftDelete_GuardDenies_NoMutation(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByCustomer", ctx, id).Return(int64(2), nil)

	result, err := manager.SoftDelete(ctx, shared.EntityCustomer, id, "admin")

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "active contract")
	store.AssertNotCalled(t, "SoftDelete")
}

func TestManager_SoftDelete_UnknownType(t *testing.T) {
	gm := newGuardMocks()
	manager, _ := newTestManager(t, gm)

	_, err := manager.SoftDelete(context.Background(), shared.EntityType("ghost"), uuid.New(), "admin")

	assert.Error(t, err)
}

func TestManager_SoftDelete_AlreadyDeleted(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByCustomer", ctx, id).Return(int64(0), nil)
	store.On("SoftDelete", ctx, id).Return(shared.ErrAlreadyDeleted)

	_, err := manager.SoftDelete(ctx, shared.EntityCustomer, id, "admin")

	assert.ErrorIs(t, err, shared.ErrAlreadyDeleted)
}

func TestManager_Restore_Success(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	id := uuid.New()
	store.On("Restore", ctx, id).Return(nil)

	result, err := manager.Restore(ctx, shared.EntityCustomer, id)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	store.AssertExpectations(t)
}

func TestManager_Restore_NotDeleted(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	id := uuid.New()
	store.On("Restore", ctx, id).Return(shared.ErrNotDeleted)

	_, err := manager.Restore(ctx, shared.EntityCustomer, id)

	assert.ErrorIs(t, err, shared.ErrNotDeleted)
}

func TestManager_ListSoftDeleted_DefaultsPagination(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	rows := []any{map[string]any{"id": uuid.New().String()}}
	store.On("ListDeleted", ctx, 1, 20).Return(rows, int64(1), nil)

	result, err := manager.ListSoftDeleted(ctx, shared.EntityCustomer, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.Len(t, result.Items, 1)
	store.AssertExpectations(t)
}

func TestManager_ListSoftDeleted_CapsPageSize(t *testing.T) {
	gm := newGuardMocks()
	manager, store := newTestManager(t, gm)

	ctx := context.Background()
	store.On("ListDeleted", ctx, 2, 20).Return([]any{}, int64(0), nil)

	result, err := manager.ListSoftDeleted(ctx, shared.EntityCustomer, 2, 500)

	assert.NoError(t, err)
	assert.Equal(t, 20, result.PageSize)
	store.AssertExpectations(t)
}
