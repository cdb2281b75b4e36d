package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/store"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

// respondError writes the status matching err. Server side failures are
// logged and only described in development mode.
func (h *Handler) respondError(c *gin.Context, logger string, err error) {
	status, msg := h.statusOf(err)
	if status >= http.StatusInternalServerError {
		zap.S().Named(logger).Errorw("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, v1.Error{Error: msg})
}

func (h *Handler) statusOf(err error) (int, string) {
	switch {
	case srvErrors.IsInvalidParametersError(err),
		srvErrors.IsInvalidAuthorizationError(err),
		srvErrors.IsResourceAlreadyExistsError(err):
		return http.StatusBadRequest, err.Error()
	case srvErrors.IsMissingAuthenticationError(err),
		srvErrors.IsNotOwnerError(err),
		srvErrors.IsIncorrectPasswordError(err),
		srvErrors.IsNotAvailableInProductionError(err):
		return http.StatusForbidden, err.Error()
	case srvErrors.IsResourceStillReferencedError(err):
		return http.StatusConflict, err.Error()
	case srvErrors.IsResourceNotFoundError(err),
		srvErrors.IsReferencedResourceNotFoundError(err):
		return http.StatusNotFound, err.Error()
	case store.IsKind(err, store.KindCouldNotConnect):
		return http.StatusServiceUnavailable, h.devMessage("Could not connect to database", "Service Not Available")
	default:
		return http.StatusInternalServerError, h.devMessage(err.Error(), "Internal Server Error")
	}
}

func (h *Handler) devMessage(dev, prod string) string {
	if h.production {
		return prod
	}
	return dev
}

// ParameterError answers requests whose path or query parameters could not
// be bound.
func (h *Handler) ParameterError(c *gin.Context, err error, _ int) {
	h.respondError(c, "handler", srvErrors.NewInvalidParametersError(err.Error()))
}
