package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/middleware"
	"github.com/hotel-redisons/service-hotel/internal/response"
)

// ReportHandler exposes the dashboard aggregates over HTTP.
type ReportHandler struct {
	service *application.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *application.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes mounts the report endpoints on the given group.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/weekly", h.Weekly)
		reports.GET("/revenue-by-room-type", h.RevenueByRoomType)
		reports.GET("/trend", h.Trend)
	}
}

// Summary handles GET /reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Weekly handles GET /reports/weekly.
func (h *ReportHandler) Weekly(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	points, err := h.service.Weekly(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}

// RevenueByRoomType handles GET /reports/revenue-by-room-type.
func (h *ReportHandler) RevenueByRoomType(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	rows, err := h.service.RevenueByRoomType(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// Trend handles GET /reports/trend?months=.
func (h *ReportHandler) Trend(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.BadRequest(c, "missing account context")
		return
	}

	months := 0
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "months must be an integer")
			return
		}
		months = parsed
	}

	points, err := h.service.Trend(c.Request.Context(), ownerID, months)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}
