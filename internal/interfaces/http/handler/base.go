package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/interfaces/http/dto"
)

// BaseHandler provides shared response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Success(data))
}

func (h *BaseHandler) respondOKWithMeta(c *gin.Context, data any, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.SuccessWithMeta(data, meta))
}

func (h *BaseHandler) respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", message))
}

// respondError maps domain errors to HTTP status codes
func (h *BaseHandler) respondError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		h.logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Error("INTERNAL_ERROR", "An internal error occurred"))
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case shared.ErrNotFound.Code:
		status = http.StatusNotFound
	case shared.ErrAlreadyDeleted.Code, shared.ErrNotDeleted.Code, shared.ErrConcurrencyConflict.Code:
		status = http.StatusConflict
	case shared.ErrInvalidInput.Code, shared.ErrValidationFailed.Code, "UNKNOWN_ENTITY_TYPE":
		status = http.StatusBadRequest
	case shared.ErrIntegrityViolation.Code:
		status = http.StatusConflict
	case shared.ErrRestoreTimeout.Code:
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, dto.Error(domainErr.Code, domainErr.Message))
}
