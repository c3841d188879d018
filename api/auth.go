package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/mockapi"
)

type AuthHandler struct {
	store *mockapi.Store
}

type registerRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func NewAuthHandler(store *mockapi.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleCustomer
	}

	user, token, expiresAt, err := h.store.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, mockapi.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": authResponse{User: user, Token: token, ExpiresAt: expiresAt}})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, expiresAt, err := h.store.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authResponse{User: user, Token: token, ExpiresAt: expiresAt}})
}

// logout revokes the presented token. It succeeds even without one; the
// client clears its own session either way.
func (h *AuthHandler) logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		h.store.Revoke(token)
	}
	c.Status(http.StatusNoContent)
}
