package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// SendError sends an error response whose error field is the caller-facing summary
func SendError(c *gin.Context, statusCode int, summary string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   summary,
		Message: message,
		Code:    statusCode,
	})
}

// SendInternalError sends a 500 with an opaque summary
func SendInternalError(c *gin.Context, summary string) {
	SendError(c, http.StatusInternalServerError, summary, "")
}

// SendBadRequest sends a 400 bad request error
func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, http.StatusText(http.StatusBadRequest), message)
}

// SendNotFound sends a 404 not found error
func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, http.StatusText(http.StatusNotFound), message)
}

// SendBadGateway sends a 502 when an upstream collaborator is unavailable
func SendBadGateway(c *gin.Context, summary string) {
	SendError(c, http.StatusBadGateway, summary, "")
}

// SendSuccess sends a 200 success response
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}
