package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/services"
)

// respondError translates service error kinds into HTTP responses.
func respondError(c *gin.Context, err error) {
	if verr, ok := services.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    verr.Error(),
			"kind":     verr.Kind,
			"problems": verr.Problems,
		})
		return
	}

	switch {
	case errors.Is(err, errors.Unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, errors.NotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	case errors.Is(err, errors.NotValid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pagination reads page/limit query parameters with the given default
func pagination(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page = queryInt(c, "page", 1)
	limit = queryInt(c, "limit", defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}
