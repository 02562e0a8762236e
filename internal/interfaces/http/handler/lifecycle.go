package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/application/lifecycle"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/interfaces/http/dto"
)

// LifecycleHandler exposes the soft-delete lifecycle over HTTP
type LifecycleHandler struct {
	BaseHandler
	guard   *lifecycle.Guard
	manager *lifecycle.Manager
}

// NewLifecycleHandler creates a lifecycle handler
func NewLifecycleHandler(guard *lifecycle.Guard, manager *lifecycle.Manager, logger *zap.Logger) *LifecycleHandler {
	return &LifecycleHandler{
		BaseHandler: NewBaseHandler(logger),
		guard:       guard,
		manager:     manager,
	}
}

// RegisterRoutes mounts the lifecycle routes on the given group
func (h *LifecycleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entities/:type/:id/can-delete", h.CanDelete)
	rg.DELETE("/entities/:type/:id", h.SoftDelete)
	rg.POST("/entities/:type/:id/restore", h.Restore)
	rg.GET("/trash/:type", h.ListSoftDeleted)
}

func (h *LifecycleHandler) parseTarget(c *gin.Context) (shared.EntityType, uuid.UUID, bool) {
	entityType, err := shared.ParseEntityType(c.Param("type"))
	if err != nil {
		h.respondError(c, err)
		return "", uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondBadRequest(c, "invalid id: must be a UUID")
		return "", uuid.Nil, false
	}
	return entityType, id, true
}

// CanDelete reports whether an entity can be deleted without breaking
// referential integrity. The verdict is advisory; SoftDelete re-checks it.
func (h *LifecycleHandler) CanDelete(c *gin.Context) {
	entityType, id, ok := h.parseTarget(c)
	if !ok {
		return
	}
	verdict := h.guard.CanDelete(c.Request.Context(), entityType, id)
	h.respondOK(c, verdict)
}

// SoftDelete marks an entity as deleted after a fresh guard check
func (h *LifecycleHandler) SoftDelete(c *gin.Context) {
	entityType, id, ok := h.parseTarget(c)
	if !ok {
		return
	}
	actor := c.GetHeader("X-Actor")
	if actor == "" {
		actor = "anonymous"
	}

	result, err := h.manager.SoftDelete(c.Request.Context(), entityType, id, actor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusConflict, dto.Error(shared.ErrIntegrityViolation.Code, result.Message))
		return
	}
	h.respondOK(c, result)
}

// Restore clears the deletion mark on a soft-deleted entity
func (h *LifecycleHandler) Restore(c *gin.Context) {
	entityType, id, ok := h.parseTarget(c)
	if !ok {
		return
	}
	result, err := h.manager.Restore(c.Request.Context(), entityType, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, result)
}

// ListSoftDeleted returns a page of soft-deleted entities of one type, most
// recently deleted first
func (h *LifecycleHandler) ListSoftDeleted(c *gin.Context) {
	entityType, err := shared.ParseEntityType(c.Param("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.manager.ListSoftDeleted(c.Request.Context(), entityType, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOKWithMeta(c, result.Items, dto.Meta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}
