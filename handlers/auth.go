package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suryaansh001/shayari-backend/internal/auth"
	"github.com/suryaansh001/shayari-backend/internal/config"
	"github.com/suryaansh001/shayari-backend/internal/tokens"
	"github.com/suryaansh001/shayari-backend/pkg/logger"
	"github.com/suryaansh001/shayari-backend/pkg/metrics"
	"github.com/suryaansh001/shayari-backend/pkg/middleware"
)

// LoginRequest is the operator password login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	admin  auth.Admin
	tokens *tokens.Service
}

func NewAuthHandler(cfg *config.Config, ts *tokens.Service) *AuthHandler {
	return &AuthHandler{
		admin:  auth.Admin{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
		tokens: ts,
	}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg gin.IRouter) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.GET("/me", middleware.RequireAuth(), h.Me)
}

// Login exchanges the operator credential for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.LoginAttempts.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}
	if !h.admin.Configured() {
		metrics.LoginAttempts.WithLabelValues("unconfigured").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Login is not configured"})
		return
	}
	if !h.admin.Check(req.Username, req.Password) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		logger.Warnf("login rejected for username=%q ip=%s", req.Username, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		logger.Errorf("token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": "token signing unavailable"})
		return
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int64(h.tokens.TTL().Seconds()),
		"user":      gin.H{"userId": req.Username},
	})
}

// Me echoes the identity carried by the caller's token.
func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	c.JSON(http.StatusOK, gin.H{"userId": id.Subject})
}
