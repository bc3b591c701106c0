package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopd/internal/domain"
)

type addToCartRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

func (h handlers) addToCart(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id required"})
		return
	}

	cart, err := h.deps.CartSvc.AddItem(c.Request.Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h handlers) listCarts(c *gin.Context) {
	carts, err := h.deps.CartSvc.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if carts == nil {
		carts = []domain.Cart{}
	}
	c.JSON(http.StatusOK, carts)
}

func (h handlers) viewCart(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	cart, err := h.deps.CartSvc.ViewForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
