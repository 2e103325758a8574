package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contacthub/internal/common"
)

// writeError maps the service sentinel errors onto HTTP statuses. The
// body shape is always {"detail": "..."} so clients have one error
// contract across the API. Unknown errors become a generic 500 without
// leaking internals.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	case errors.Is(err, common.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"detail": "Already exists"})
	case errors.Is(err, common.ErrEmailNotConfirmed):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Email not confirmed"})
	case errors.Is(err, common.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrScopeMismatch):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
	case errors.Is(err, common.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Operation forbidden"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
