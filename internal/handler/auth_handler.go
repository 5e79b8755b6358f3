package handler

import (
	"errors"
	"net/http"

	"ticketera/internal/model"
	"ticketera/internal/service"
	apperrors "ticketera/pkg/app_errors"
	"ticketera/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
	r.GET("/users/me", authRequired, h.Me)
	r.PUT("/users/me/wallet", authRequired, h.UpdateWallet)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.service.Register(c, req)
	if err != nil {
		h.handleAuthError(c, err, "Register")
		return
	}

	c.JSON(http.StatusCreated, model.NewUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	token, err := h.service.Login(c, req.Email, req.Password)
	if err != nil {
		h.handleAuthError(c, err, "Login")
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

func (h *AuthHandler) UpdateWallet(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	var req model.UpdateWalletRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.service.UpdateWallet(c, req.WalletAddress, actor)
	if err != nil {
		h.handleAuthError(c, err, "UpdateWallet")
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEmailTaken):
		log.Warn("Email already registered")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Email already registered",
		})
	case errors.Is(err, apperrors.ErrWalletTaken):
		log.Warn("Wallet address already registered")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Wallet address already registered",
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Incorrect email or password",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
