package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for hotel assignment settings
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new settings handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers settings routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/hotels/:hotelId/settings", h.getSettings)
	router.PUT("/hotels/:hotelId/settings", h.updateSettings)
	router.GET("/hotels/:hotelId/settings/effective", h.effectiveWeights)
}

func (h *Handler) getSettings(c *gin.Context) {
	hotelID, ok := h.hotelID(c)
	if !ok {
		return
	}
	stored, err := h.service.Get(c.Request.Context(), hotelID)
	if err != nil {
		h.logger.Error("failed to load hotel settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stored == nil {
		c.JSON(http.StatusOK, gin.H{"hotel_id": hotelID, "overrides": nil})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *Handler) updateSettings(c *gin.Context) {
	hotelID, ok := h.hotelID(c)
	if !ok {
		return
	}
	var payload HotelSettings
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload.HotelID = hotelID

	if err := h.service.Update(c.Request.Context(), &payload); err != nil {
		h.logger.Error("failed to update hotel settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) effectiveWeights(c *gin.Context) {
	hotelID, ok := h.hotelID(c)
	if !ok {
		return
	}
	weights, err := h.service.WeightsFor(c.Request.Context(), hotelID)
	if err != nil {
		h.logger.Error("failed to resolve weights", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, weights)
}

func (h *Handler) hotelID(c *gin.Context) (uuid.UUID, bool) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return uuid.Nil, false
	}
	return hotelID, true
}
