package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ticketera/internal/service"
	apperrors "ticketera/pkg/app_errors"
	"ticketera/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	router := r.Group("/tickets")
	{
		router.GET("/my", authRequired, h.MyTickets)
		router.GET("/:tokenID/owner", h.Owner)
		router.GET("/:tokenID/history", h.History)
	}
}

func (h *TicketHandler) MyTickets(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	tickets, err := h.service.MyTickets(c, actor)
	if err != nil {
		h.handleTicketError(c, err, "MyTickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) Owner(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("tokenID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token id"})
		return
	}

	owner, err := h.service.OwnerOf(c, tokenID)
	if err != nil {
		h.handleTicketError(c, err, "Owner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_id": tokenID,
		"owner":    owner,
	})
}

func (h *TicketHandler) History(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("tokenID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token id"})
		return
	}

	history, err := h.service.History(c, tokenID)
	if err != nil {
		h.handleTicketError(c, err, "History")
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *TicketHandler) handleTicketError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
	case errors.Is(err, apperrors.ErrMissingWallet):
		log.Warn("Missing wallet address")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "User has no wallet address",
		})
	case errors.Is(err, apperrors.ErrChainUnavailable):
		log.Error("Chain error")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Chain error",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
