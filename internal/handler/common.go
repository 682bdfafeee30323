package handler

import (
	"errors"

	"pulse-backend/internal/service"
	"pulse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// fail maps the service error taxonomy onto HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "internal error")
	}
}
