package assignment

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the assignment allocator
type Handler struct {
	service *Service
	logger  *zap.Logger

	// inFlight guards against two concurrent batch runs for one hotel. The
	// allocator assumes single-writer execution per hotel.
	inFlight sync.Map
}

// NewHandler creates a new assignment handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers assignment routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/hotels/:hotelId/auto-assign", h.autoAssign)
}

// autoAssign handles POST /api/v1/hotels/:hotelId/auto-assign
func (h *Handler) autoAssign(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return
	}

	if _, busy := h.inFlight.LoadOrStore(hotelID, true); busy {
		c.JSON(http.StatusConflict, gin.H{"error": "auto-assign already running for this hotel"})
		return
	}
	defer h.inFlight.Delete(hotelID)

	outcome, err := h.service.AutoAssign(c.Request.Context(), hotelID)
	if err != nil {
		h.logger.Error("auto-assign batch failed",
			zap.String("hotel_id", hotelID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"partial": outcome,
		})
		return
	}

	c.JSON(http.StatusOK, outcome)
}
