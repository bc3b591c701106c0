package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopd/internal/domain"
)

type placeOrderRequest struct {
	CartID int64 `json:"cart_id"`
}

func (h handlers) placeOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CartID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart id required"})
		return
	}

	order, err := h.deps.OrderSvc.Place(c.Request.Context(), userID, req.CartID)
	if err != nil {
		// A cart owned by another user reads the same as a missing one.
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h handlers) listOrders(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	orders, err := h.deps.OrderSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}
