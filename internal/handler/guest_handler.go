package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/middleware"
	"github.com/hotel-redisons/service-hotel/internal/response"
)

// GuestHandler exposes the guest pool over HTTP.
type GuestHandler struct {
	service *application.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(service *application.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// RegisterRoutes mounts the guest endpoints on the given group.
func (h *GuestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guests := rg.Group("/guests")
	{
		guests.POST("", h.Create)
		guests.GET("", h.List)
		guests.GET("/:id", h.Get)
		guests.PATCH("/:id", h.Update)
		guests.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /guests.
func (h *GuestHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	var in application.GuestInput
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

// List handles GET /guests.
func (h *GuestHandler) List(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	dtos, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// Get handles GET /guests/:id.
func (h *GuestHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Update handles PATCH /guests/:id.
func (h *GuestHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest ID")
		return
	}

	var in application.UpdateGuestInput
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

// Delete handles DELETE /guests/:id.
func (h *GuestHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
