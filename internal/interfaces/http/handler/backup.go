package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/application/backup"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/interfaces/http/dto"
)

// BackupHandler exposes snapshot export, validation, restore and statistics
// over HTTP
type BackupHandler struct {
	BaseHandler
	service     *backup.Service
	maxBodySize int64
}

// NewBackupHandler creates a backup handler. maxBodySize caps uploaded
// snapshot payloads.
func NewBackupHandler(service *backup.Service, maxBodySize int64, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		maxBodySize: maxBodySize,
	}
}

// RegisterRoutes mounts the backup routes on the given group
func (h *BackupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/snapshot", h.CreateSnapshot)
	rg.POST("/validate", h.ValidateSnapshot)
	rg.POST("/restore", h.RestoreSnapshot)
	rg.GET("/statistics", h.GetStatistics)
}

// CreateSnapshot exports all live data as a snapshot document
func (h *BackupHandler) CreateSnapshot(c *gin.Context) {
	snap, err := h.service.CreateSnapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, snap)
}

// readBody reads the request body with the configured size cap
func (h *BackupHandler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxBodySize+1))
	if err != nil {
		h.respondBadRequest(c, "failed to read request body")
		return nil, false
	}
	if int64(len(body)) > h.maxBodySize {
		c.JSON(http.StatusRequestEntityTooLarge,
			dto.Error("PAYLOAD_TOO_LARGE", "snapshot payload exceeds the configured size limit"))
		return nil, false
	}
	if len(body) == 0 {
		h.respondBadRequest(c, "request body is empty")
		return nil, false
	}
	return body, true
}

// ValidateSnapshot checks a snapshot document for structural problems and
// reports every violation found
func (h *BackupHandler) ValidateSnapshot(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	result := backup.ValidateSnapshot(body)
	h.respondOK(c, result)
}

// RestoreSnapshot validates a snapshot document and, if well-formed, replaces
// the store's live data with its contents in one transaction
func (h *BackupHandler) RestoreSnapshot(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	validation := backup.ValidateSnapshot(body)
	if !validation.IsValid {
		c.JSON(http.StatusBadRequest, dto.ErrorWithDetails(
			shared.ErrValidationFailed.Code,
			shared.ErrValidationFailed.Message,
			validation.Errors,
		))
		return
	}

	var snap backup.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		h.respondBadRequest(c, "snapshot payload is not valid JSON: "+err.Error())
		return
	}

	if err := h.service.Restore(c.Request.Context(), &snap); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"restored": snap.TotalRecords()})
}

// GetStatistics reports live record counts per collection plus the last
// backup date
func (h *BackupHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, stats)
}
