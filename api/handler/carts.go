package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bistro/database"
)

// ListCartItems returns the cart items for the email given as a query
// parameter. An unknown email yields an empty list.
func (h *Handler) ListCartItems(c *gin.Context) {
	items, err := h.db.ListCartItems(c.Request.Context(), c.Query("email"))
	if err != nil {
		log.Error("failed to list cart items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cart items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddCartItem places a menu item into a user's cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	var item database.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.db.AddCartItem(c.Request.Context(), item)
	if err != nil {
		log.Error("failed to add cart item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add cart item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}

// DeleteCartItem removes a cart item by id.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	count, err := h.db.DeleteCartItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error("failed to delete cart item", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": count})
}
