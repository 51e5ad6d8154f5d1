package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: message})
}

// Error translates an application error into the matching HTTP status:
// validation 400, unauthorized 401, forbidden 403, not-found 404,
// conflict 409, everything else 500.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case domain.KindUnauthorized:
		status = http.StatusUnauthorized
		message = err.Error()
	case domain.KindForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case domain.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case domain.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, envelope{Success: false, Error: message})
}
