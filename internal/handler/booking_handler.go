package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/middleware"
	"github.com/hotel-redisons/service-hotel/internal/response"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes mounts the booking endpoints on the given group.
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id", h.Update)
		bookings.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	var in application.CreateBookingInput
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

// List handles GET /bookings.
func (h *BookingHandler) List(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	var in application.ListBookingsInput
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

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Update handles PATCH /bookings/:id.
func (h *BookingHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var in application.UpdateBookingInput
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

// Delete handles DELETE /bookings/:id.
func (h *BookingHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
