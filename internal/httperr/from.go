package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// From maps the engine's error taxonomy onto HTTP responses.
func From(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		Write(c, http.StatusBadRequest, "validation_error", err.Error())
	case apperr.IsConflict(err):
		Write(c, http.StatusConflict, "conflict", err.Error())
	case apperr.IsConfiguration(err):
		Write(c, http.StatusServiceUnavailable, "not_configured", err.Error())
	case apperr.IsExternal(err):
		Write(c, http.StatusBadGateway, "external_service_error", err.Error())
	default:
		Write(c, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
