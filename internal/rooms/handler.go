package rooms

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for room state operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new rooms handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers room routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	hotels := router.Group("/hotels/:hotelId")
	{
		hotels.GET("/rooms", h.listRooms)
		hotels.GET("/rooms/:roomId/history", h.roomHistory)
		hotels.GET("/rooms/:roomId/transitions", h.allowedTransitions)
		hotels.POST("/rooms/:roomId/transition", h.transition)
		hotels.POST("/rooms/:roomId/maintenance/complete", h.completeMaintenance)
	}
	router.GET("/states", h.listStates)
}

type transitionBody struct {
	CurrentStatus   string `json:"current_status"`
	RequestedStatus string `json:"requested_status" binding:"required"`
	Notes           string `json:"notes"`
}

// transition handles POST /api/v1/hotels/:hotelId/rooms/:roomId/transition
func (h *Handler) transition(c *gin.Context) {
	hotelID, roomID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var body transitionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requested, err := ParseStatus(body.RequestedStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := TransitionRequest{
		HotelID:         hotelID,
		RoomID:          roomID,
		ActingStaff:     h.actingStaff(c),
		ActingRole:      h.actingRole(c),
		RequestedStatus: requested,
		Notes:           body.Notes,
	}
	if body.CurrentStatus != "" {
		current, err := ParseStatus(body.CurrentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.CurrentStatus = current
	}

	room, err := h.service.ApplyTransition(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// completeMaintenance handles POST .../rooms/:roomId/maintenance/complete
func (h *Handler) completeMaintenance(c *gin.Context) {
	hotelID, roomID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&body)

	room, err := h.service.CompleteMaintenance(c.Request.Context(), hotelID, roomID, h.actingStaff(c), body.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// listRooms handles GET /api/v1/hotels/:hotelId/rooms?status=checkout,need_cleaning
func (h *Handler) listRooms(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return
	}

	statuses := AllStatuses()
	if raw := c.Query("status"); raw != "" {
		statuses = statuses[:0]
		for _, part := range strings.Split(raw, ",") {
			st, err := ParseStatus(part)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			statuses = append(statuses, st)
		}
	}

	list, err := h.service.ListRoomsByStatus(c.Request.Context(), hotelID, h.actingRole(c), statuses)
	if err != nil {
		h.logger.Error("failed to list rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": list, "count": len(list)})
}

// roomHistory handles GET .../rooms/:roomId/history
func (h *Handler) roomHistory(c *gin.Context) {
	hotelID, roomID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.service.History(c.Request.Context(), hotelID, roomID, limit)
	if err != nil {
		h.logger.Error("failed to list room history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries, "count": len(entries)})
}

// allowedTransitions handles GET .../rooms/:roomId/transitions
func (h *Handler) allowedTransitions(c *gin.Context) {
	hotelID, roomID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	room, err := h.service.repo.GetRoom(c.Request.Context(), hotelID, roomID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	role := h.actingRole(c)
	targets := AllowedTransitions(role, room.Status)
	c.JSON(http.StatusOK, gin.H{
		"room_id": room.ID,
		"status":  room.Status,
		"allowed": targets,
	})
}

// listStates handles GET /api/v1/states
func (h *Handler) listStates(c *gin.Context) {
	defs := make([]StateDefinition, 0, len(statusOrder))
	for _, s := range statusOrder {
		def, _ := StateFor(s)
		defs = append(defs, def)
	}
	c.JSON(http.StatusOK, gin.H{"states": defs})
}

func (h *Handler) pathIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return uuid.Nil, uuid.Nil, false
	}
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return uuid.Nil, uuid.Nil, false
	}
	return hotelID, roomID, true
}

// actingRole reads the role placed in context by the auth middleware.
func (h *Handler) actingRole(c *gin.Context) Role {
	if raw, exists := c.Get("role"); exists {
		if role, ok := raw.(Role); ok {
			return role
		}
		if str, ok := raw.(string); ok {
			if role, err := ParseRole(str); err == nil {
				return role
			}
		}
	}
	return ""
}

// actingStaff reads the staff id placed in context by the auth middleware.
func (h *Handler) actingStaff(c *gin.Context) uuid.UUID {
	if raw, exists := c.Get("staff_id"); exists {
		if id, ok := raw.(uuid.UUID); ok {
			return id
		}
		if str, ok := raw.(string); ok {
			if id, err := uuid.Parse(str); err == nil {
				return id
			}
		}
	}
	return uuid.Nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrStaffNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("room operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
