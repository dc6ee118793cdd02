package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/services"
)

// respondError translates a service-layer error into an HTTP response. The
// InvalidTransitionError case must run before the ErrConflict check so its
// from/to message survives.
func respondError(c *gin.Context, err error) {
	var transitionErr *services.InvalidTransitionError
	switch {
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
