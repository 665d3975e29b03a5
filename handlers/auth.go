package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gogotex/gogotex/backend/blog-service/internal/admin"
	"github.com/gogotex/gogotex/backend/blog-service/internal/sessions"
	"github.com/gogotex/gogotex/backend/blog-service/internal/tokens"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/middleware"
)

// LoginRequest is the admin login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	admin     *admin.Service
	issuer    *tokens.Issuer
	blacklist *sessions.Blacklist
}

// NewAuthHandler wires the login and logout endpoints. blacklist may be nil.
func NewAuthHandler(a *admin.Service, issuer *tokens.Issuer, blacklist *sessions.Blacklist) *AuthHandler {
	return &AuthHandler{admin: a, issuer: issuer, blacklist: blacklist}
}

// Login checks the admin credentials and returns a signed access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	username, err := h.admin.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Errorf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issuer.GenerateAccessToken(username)
	if err != nil {
		logger.Errorf("login: sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Infof("admin %q logged in", username)
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int64(h.issuer.TTL().Seconds())})
}

// Logout revokes the presented token until it expires. Without a blacklist it is a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(middleware.TokenKey)
	if h.blacklist.Enabled() && raw != "" {
		ttl, err := h.issuer.Remaining(raw)
		if err == nil {
			err = h.blacklist.Revoke(c.Request.Context(), raw, ttl)
		}
		if err != nil {
			logger.Errorf("logout: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
