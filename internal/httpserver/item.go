package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopd/internal/domain"
	itemsvc "shopd/internal/service/item"
)

func (h handlers) createItem(c *gin.Context) {
	var req itemsvc.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": itemsvc.ErrInvalidItem.Error()})
		return
	}

	it, err := h.deps.ItemSvc.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h handlers) listItems(c *gin.Context) {
	items, err := h.deps.ItemSvc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, items)
}
