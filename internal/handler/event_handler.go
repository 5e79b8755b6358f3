package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ticketera/internal/model"
	"ticketera/internal/service"
	apperrors "ticketera/pkg/app_errors"
	"ticketera/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	events    service.EventService
	purchases service.PurchaseService
}

func NewEventHandler(events service.EventService, purchases service.PurchaseService) *EventHandler {
	return &EventHandler{events: events, purchases: purchases}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	router := r.Group("/events")
	{
		router.GET("", h.ListEvents)
		router.GET("/recommendations", h.Recommendations)
		router.GET("/:id", h.GetEvent)
		router.POST("", authRequired, h.CreateEvent)
		router.PUT("/:id", authRequired, h.UpdateEvent)
		router.DELETE("/:id", authRequired, h.DeleteEvent)
		router.POST("/:id/purchase", authRequired, h.Purchase)
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.events.List(c)
	if err != nil {
		h.handleEventError(c, err, "ListEvents")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.events.Get(c, id)
	if err != nil {
		h.handleEventError(c, err, "GetEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Recommendations(c *gin.Context) {
	var query model.RecommendationsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	events, err := h.events.Recommend(c, query.EventID)
	if err != nil {
		h.handleEventError(c, err, "Recommendations")
		return
	}

	c.JSON(http.StatusOK, model.RecommendationsResponse{Events: events})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.events.Create(c, req, actor)
	if err != nil {
		h.handleEventError(c, err, "CreateEvent")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var params model.UpdateEventParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	event, err := h.events.Update(c, id, params, actor)
	if err != nil {
		h.handleEventError(c, err, "UpdateEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	if err := h.events.Delete(c, id, actor); err != nil {
		h.handleEventError(c, err, "DeleteEvent")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Purchase(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	result, err := h.purchases.Purchase(c, id, actor)
	if err != nil {
		h.handleEventError(c, err, "Purchase")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrSoldOut):
		log.Warn("Event sold out")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Event sold out",
		})
	case errors.Is(err, apperrors.ErrMissingWallet):
		log.Warn("Missing wallet address")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "User has no wallet address",
		})
	case errors.Is(err, apperrors.ErrMintEventMissing):
		log.Error("Mint event missing from receipt")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Mint transfer event not found in receipt",
		})
	case errors.Is(err, apperrors.ErrChainTimeout):
		log.Error("Chain confirmation timeout")
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "Timed out waiting for transaction confirmation",
		})
	case errors.Is(err, apperrors.ErrChainReverted), errors.Is(err, apperrors.ErrChainUnavailable):
		log.Error("Chain error")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Chain error",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
