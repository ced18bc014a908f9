package handler

import (
	"net/http"

	"github.com/auth-account-service/internal/authservice/middleware"
	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Message       string      `json:"message,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// ErrorInfo represents error information in a response. Details carries the
// individual validation violation messages when the error is a validation
// failure.
type ErrorInfo struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// NewResponse creates a new response with data and an optional message
func NewResponse(data interface{}, message string) *Response {
	return &Response{
		Data:    data,
		Message: message,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string, details ...string) *Response {
	return &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// RespondWithData sends a JSON response with data and message
func RespondWithData(c *gin.Context, statusCode int, data interface{}, message string) {
	response := NewResponse(data, message)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string, details ...string) {
	response := NewErrorResponse(code, message, details...)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}, message string) {
	RespondWithData(c, http.StatusOK, data, message)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithData(c, http.StatusCreated, data, message)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string, details ...string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message, details...)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondConflict sends a 409 Conflict response with an error
func RespondConflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, "CONFLICT", message)
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}
