package maintenance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for maintenance tickets
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new maintenance handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers maintenance routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/hotels/:hotelId/maintenance")
	{
		tickets.GET("/tickets", h.listOpen)
		tickets.POST("/tickets/:ticketId/complete", h.complete)
	}
}

func (h *Handler) listOpen(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return
	}
	tickets, err := h.service.OpenTickets(c.Request.Context(), hotelID)
	if err != nil {
		h.logger.Error("failed to list maintenance tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets, "count": len(tickets)})
}

func (h *Handler) complete(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return
	}
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&body)

	closedBy := uuid.Nil
	if raw, exists := c.Get("staff_id"); exists {
		if id, ok := raw.(uuid.UUID); ok {
			closedBy = id
		}
	}

	room, err := h.service.CompleteTicket(c.Request.Context(), hotelID, ticketID, closedBy, body.Notes)
	if err != nil {
		if room == nil {
			h.logger.Error("failed to complete maintenance ticket", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": room, "warning": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}
