package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
	"github.com/ridwanfathin/supplier-invoice-service/internal/service"
)

// HTTP status codes as constants for consistency
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusNotFound            = http.StatusNotFound
	StatusInternalServerError = http.StatusInternalServerError
)

// Common error messages
const (
	ErrInvalidInput       = "Invalid input format"
	ErrResourceNotFound   = "Resource not found"
	ErrInternalServer     = "Internal server error"
	ErrInvalidQueryParams = "Invalid query parameters"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, kind, message string, details ...model.ErrorDetail) {
	response := model.ErrorResponse{
		Kind:    kind,
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	}
	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusBadRequest, model.KindValidation, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, StatusNotFound, model.KindNotFound, message)
}

// respondInternalServerError sends a 500 Internal Server Error response.
// The message never carries error detail.
func respondInternalServerError(c *gin.Context) {
	respondWithError(c, StatusInternalServerError, model.KindInternal, ErrInternalServer)
}

// respondServiceError maps a service failure onto the error envelope.
// Only unexpected failures are logged.
func respondServiceError(c *gin.Context, event string, err error, notFoundMessage string) {
	if invalid, ok := service.IsInvalidInput(err); ok {
		details := make([]model.ErrorDetail, 0, len(invalid.Fields))
		for _, f := range invalid.Fields {
			details = append(details, newErrorDetail(f.Field, f.Message))
		}
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		if notFoundMessage == "" {
			notFoundMessage = ErrResourceNotFound
		}
		respondNotFound(c, notFoundMessage)
		return
	}

	logError(c, event, err, nil)
	respondInternalServerError(c)
}

// respondSuccess sends a standardized success response with data
func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// respondCreated sends a 201 Created response with data
func respondCreated(c *gin.Context, data interface{}) {
	respondSuccess(c, StatusCreated, data)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	respondSuccess(c, StatusOK, data)
}

// newErrorDetail creates a new error detail
func newErrorDetail(field, message string) model.ErrorDetail {
	return model.ErrorDetail{
		Field:   field,
		Message: message,
	}
}
