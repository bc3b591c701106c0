package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopd/internal/domain"
	cartsvc "shopd/internal/service/cart"
	itemsvc "shopd/internal/service/item"
	usersvc "shopd/internal/service/user"
)

// respondError maps service errors to the HTTP taxonomy. Internal failures
// are logged server-side and never leak their message to the client.
func (h handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usersvc.ErrMissingCredentials),
		errors.Is(err, itemsvc.ErrInvalidItem),
		errors.Is(err, cartsvc.ErrItemNotFound),
		errors.Is(err, cartsvc.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
	case errors.Is(err, usersvc.ErrInvalidCredentials),
		errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
