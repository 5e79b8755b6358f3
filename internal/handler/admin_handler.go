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

type AdminHandler struct {
	auth    service.AuthService
	tickets service.TicketService
}

func NewAdminHandler(auth service.AuthService, tickets service.TicketService) *AdminHandler {
	return &AdminHandler{auth: auth, tickets: tickets}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	router := r.Group("/admin", authRequired)
	{
		router.GET("/analytics/sales-by-category", h.SalesByCategory)
		router.POST("/promote-to-organizer", h.PromoteToOrganizer)
	}
}

func (h *AdminHandler) SalesByCategory(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	sales, err := h.tickets.SalesByCategory(c, actor)
	if err != nil {
		h.handleAdminError(c, err, "SalesByCategory")
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *AdminHandler) PromoteToOrganizer(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	var req model.PromoteRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.auth.PromoteToOrganizer(c, req.Email, actor)
	if err != nil {
		h.handleAdminError(c, err, "PromoteToOrganizer")
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized to access analytics",
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
