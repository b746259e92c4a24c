package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a success envelope. A zero status means 200.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{Status: statusSuccess, Message: message, Data: data})
}

// Error writes an error envelope without data. A zero status means 500.
func Error(c echo.Context, status int, message string) error {
	return Fail(c, status, message, nil)
}

// Fail writes an error envelope that still carries data, such as the health
// report of a degraded instance.
func Fail(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{Status: statusError, Message: message, Data: data})
}
