package handler

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bistro/api/auth"
	"bistro/api/models"
	"bistro/database"
)

// Handler owns the route handlers. Each handler is a stateless mapping
// from a request to a single store operation.
type Handler struct {
	db        database.DB
	tokens    *auth.TokenManager
	startedAt time.Time
}

// New constructs the handler with its injected collaborators.
func New(db database.DB, tokens *auth.TokenManager) *Handler {
	return &Handler{
		db:        db,
		tokens:    tokens,
		startedAt: time.Now(),
	}
}

// Health reports process status and uptime.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

// IssueToken signs a credential for the presented identity claim.
func (h *Handler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	token, err := h.tokens.Issue(req.Email, req.Name)
	if err != nil {
		log.Error("failed to issue token", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
