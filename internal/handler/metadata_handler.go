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

// MetadataHandler serves the public ERC721 metadata documents referenced by
// minted token URIs.
type MetadataHandler struct {
	service service.TicketService
}

func NewMetadataHandler(service service.TicketService) *MetadataHandler {
	return &MetadataHandler{service: service}
}

func (h *MetadataHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/metadata/tickets/:tokenID", h.TicketMetadata)
}

func (h *MetadataHandler) TicketMetadata(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("tokenID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token id"})
		return
	}

	metadata, err := h.service.Metadata(c, tokenID)
	if err != nil {
		log := logger.WithComponent("handler").With(zap.String("operation", "TicketMetadata"), zap.Error(err))
		if errors.Is(err, apperrors.ErrTicketNotFound) {
			log.Warn("Ticket metadata not found")
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ticket metadata not found",
			})
			return
		}
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, metadata)
}
