package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bistro/api/auth"
	"bistro/api/models"
	"bistro/database"
)

// CreateUser registers a user on signup. Duplicate signup is a no-op
// that reports the existing record instead of creating a second one.
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.db.CreateUser(c.Request.Context(), database.User{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
			return
		}
		log.Error("failed to create user", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}

// CheckAdmin reports whether the caller's own account has the admin
// role. The path email must match the verified claim; this identity
// check applies only to this self-lookup endpoint.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")
	claims, ok := auth.ClaimsFromContext(c)
	if !ok || claims.Email != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
		return
	}
	user, err := h.db.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"admin": false})
			return
		}
		log.Error("failed to check admin role", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": user.Role == database.RoleAdmin})
}

// ListUsers returns all user records.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, models.ToUsers(users))
}

// DeleteUser deletes a user by id. The user's cart items are untouched.
func (h *Handler) DeleteUser(c *gin.Context) {
	count, err := h.db.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error("failed to delete user", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": count})
}

// PromoteUser sets a user's role to admin.
func (h *Handler) PromoteUser(c *gin.Context) {
	count, err := h.db.PromoteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error("failed to promote user", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to promote user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": count})
}
