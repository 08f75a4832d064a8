package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bistro/database"
)

// ListMenu returns all menu items.
func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.db.ListMenu(c.Request.Context())
	if err != nil {
		log.Error("failed to list menu", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem returns a single menu item by id.
func (h *Handler) GetMenuItem(c *gin.Context) {
	item, err := h.db.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		log.Error("failed to get menu item", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get menu item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem adds a new item to the menu.
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var item database.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.db.CreateMenuItem(c.Request.Context(), item)
	if err != nil {
		log.Error("failed to create menu item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}

// UpdateMenuItem replaces a menu item's fields.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var item database.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	count, err := h.db.UpdateMenuItem(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		log.Error("failed to update menu item", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": count})
}

// DeleteMenuItem removes a menu item by id.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	count, err := h.db.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error("failed to delete menu item", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": count})
}
