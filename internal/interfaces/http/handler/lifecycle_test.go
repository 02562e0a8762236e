package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/application/lifecycle"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/interfaces/http/dto"
)

// stubStore is a canned CollectionStore for route-level tests
type stubStore struct {
	softDeleteErr error
	restoreErr    error
	deleted       []any
	total         int64
}

func (s *stubStore) SoftDelete(context.Context, uuid.UUID) error { return s.softDeleteErr }
func (s *stubStore) Restore(context.Context, uuid.UUID) error    { return s.restoreErr }

func (s *stubStore) ListDeleted(context.Context, int, int) ([]any, int64, error) {
	if s.deleted == nil {
		return []any{}, s.total, nil
	}
	return s.deleted, s.total, nil
}

func (s *stubStore) CountLive(context.Context) (int64, error) { return 0, nil }

func newLifecycleRouter(t *testing.T, store *stubStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Installments have no guard rule, so none of the guard repositories are
	// ever touched by these routes.
	guard := lifecycle.NewGuard(lifecycle.GuardRepositories{}, zap.NewNop())
	registry := lifecycle.NewRegistry()
	registry.Register(shared.EntityInstallment, store)
	manager := lifecycle.NewManager(guard, registry, zap.NewNop())

	r := gin.New()
	h := NewLifecycleHandler(guard, manager, zap.NewNop())
	h.RegisterRoutes(r.Group("/api/v1/lifecycle"))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestLifecycleHandler_CanDelete_UnknownType(t *testing.T) {
	r := newLifecycleRouter(t, &stubStore{})

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/lifecycle/entities/ghost/"+uuid.NewString()+"/can-delete")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN_ENTITY_TYPE", resp.Error.Code)
}

func TestLifecycleHandler_CanDelete_InvalidID(t *testing.T) {
	r := newLifecycleRouter(t, &stubStore{})

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/lifecycle/entities/installment/not-a-uuid/can-delete")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "UUID")
}

func TestLifecycleHandler_CanDelete_Allowed(t *testing.T) {
	r := newLifecycleRouter(t, &stubStore{})

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/lifecycle/entities/installment/"+uuid.NewString()+"/can-delete")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestLifecycleHandler_SoftDelete_Success(t *testing.T) {
	r := newLifecycleRouter(t, &stubStore{})

	w, resp := doRequest(t, r, http.MethodDelete, "/api/v1/lifecycle/entities/installment/"+uuid.NewString())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestLifecycleHandler_SoftDelete_AlreadyDeleted_Conflicts(t *testing.T) {
	r := newLifecycleRouter(t, &stubStore{softDeleteErr: shared.ErrAlreadyDeleted})

	w, resp := doRequest(t, r, http.MethodDelete, "/api/v1/lifecycle/entities/installment/"+uuid.NewString())

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.ErrAlreadyDeleted.Code, resp.Error.Code)
}

func TestLifecycleHandler_Restore_NotFound(t *testing.T) {
	r := newLifecycleRouter(t, &stubStore{restoreErr: shared.ErrNotFound})

	w, resp := doRequest(t, r, http.MethodPost, "/api/v1/lifecycle/entities/installment/"+uuid.NewString()+"/restore")

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.ErrNotFound.Code, resp.Error.Code)
}

func TestLifecycleHandler_ListSoftDeleted_ReturnsMeta(t *testing.T) {
	store := &stubStore{deleted: []any{map[string]any{"name": "Old"}}, total: 41}
	r := newLifecycleRouter(t, store)

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/lifecycle/trash/installment?page=1&page_size=20")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
