package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bistro/api/auth"
	"bistro/api/handler"
	"bistro/config"
	"bistro/database"
)

// Server wires the gin engine, the gate middleware, and the handlers.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
	gate      *auth.Gate
	handler   *handler.Handler
}

// New creates the API server. The store client is constructed at
// startup by the caller and injected; nothing reads the environment at
// request time.
func New(cfg *config.Config, db database.DB) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	tokens, err := auth.NewTokenManager(cfg.Auth.JWT.Secret, cfg.Auth.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	return &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
		gate:      auth.NewGate(tokens, db),
		handler:   handler.New(db, tokens),
	}, nil
}

func (s *Server) setupRoutes() {
	s.ginEngine.Use(corsMiddleware(s.cfg.CORS))

	h := s.handler

	s.ginEngine.GET("/", h.Health)
	s.ginEngine.POST("/jwt", h.IssueToken)

	// Open CRUD routes
	s.ginEngine.POST("/users", h.CreateUser)
	s.ginEngine.GET("/menu", h.ListMenu)
	s.ginEngine.GET("/menu/:id", h.GetMenuItem)
	s.ginEngine.GET("/reviews", h.ListReviews)
	s.ginEngine.POST("/carts", h.AddCartItem)
	s.ginEngine.GET("/carts", h.ListCartItems)
	s.ginEngine.DELETE("/carts/:id", h.DeleteCartItem)

	// Routes requiring a verified credential
	s.ginEngine.GET("/users/admin/:email", s.gate.RequireAuth(), h.CheckAdmin)
	s.ginEngine.POST("/reviews", s.gate.RequireAuth(), h.CreateReview)

	// Admin-only routes
	admin := s.ginEngine.Group("/")
	admin.Use(s.gate.RequireAuth(), s.gate.RequireAdmin())
	admin.GET("/users", h.ListUsers)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.PATCH("/users/admin/:id", h.PromoteUser)
	admin.POST("/menu", h.CreateMenuItem)
	admin.PATCH("/menu/:id", h.UpdateMenuItem)
	admin.DELETE("/menu/:id", h.DeleteMenuItem)
}

func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	allowAll := cfg == nil || len(cfg.AllowedOrigins) == 0
	if cfg != nil {
		for _, origin := range cfg.AllowedOrigins {
			if origin == "*" {
				allowAll = true
				break
			}
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsCfg)
}

// Run sets up all routes and starts the server.
func (s *Server) Run() error {
	s.setupRoutes()
	return s.ginEngine.Run(s.cfg.Listen)
}
