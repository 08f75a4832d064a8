package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bistro/database"
)

// ListReviews returns all reviews.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.db.ListReviews(c.Request.Context())
	if err != nil {
		log.Error("failed to list reviews", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview adds a review.
func (h *Handler) CreateReview(c *gin.Context) {
	var review database.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.db.CreateReview(c.Request.Context(), review)
	if err != nil {
		log.Error("failed to create review", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}
