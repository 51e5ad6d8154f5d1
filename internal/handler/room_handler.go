package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/middleware"
	"github.com/hotel-redisons/service-hotel/internal/response"
)

// RoomHandler exposes room inventory and availability over HTTP.
type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RegisterRoutes mounts the room endpoints on the given group. The static
// paths go before the :id route so gin does not swallow them.
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.Create)
		rooms.GET("", h.List)
		rooms.GET("/available", h.SearchAvailable)
		rooms.GET("/booked", h.ListBooked)
		rooms.GET("/:id", h.Get)
		rooms.PATCH("/:id", h.Update)
		rooms.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	var in application.CreateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// List handles GET /rooms.
func (h *RoomHandler) List(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	var in application.ListRoomsInput
	if err := c.ShouldBindQuery(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dtos, err := h.service.List(c.Request.Context(), ownerID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// SearchAvailable handles GET /rooms/available?start=&end=.
func (h *RoomHandler) SearchAvailable(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		response.BadRequest(c, "start must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		response.BadRequest(c, "end must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		return
	}

	dtos, err := h.service.SearchAvailable(c.Request.Context(), ownerID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// ListBooked handles GET /rooms/booked.
func (h *RoomHandler) ListBooked(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	dtos, err := h.service.ListBooked(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// parseDateParam accepts either a full RFC 3339 timestamp or a plain date.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// Get handles GET /rooms/:id.
func (h *RoomHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Update handles PATCH /rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	var in application.UpdateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Update(c.Request.Context(), ownerID, id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Delete handles DELETE /rooms/:id.
func (h *RoomHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
