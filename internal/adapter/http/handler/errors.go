package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/client"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/csvio"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Model service faults surface as 502 since the request itself was valid.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrRunNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "run not found",
		}
	case errors.Is(err, csvio.ErrMissingColumn), errors.Is(err, csvio.ErrRaggedRow):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_CSV",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "invalid request",
		}
	case errors.Is(err, usecase.ErrClassificationIntegrity):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       "CLASSIFICATION_INTEGRITY",
			Message:    "classifier labels do not match the category table",
		}
	case errors.Is(err, client.ErrMalformedResponse):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       "MODEL_SERVICE_ERROR",
			Message:    "model service returned a malformed response",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// Unmapped errors are attached to the context so the logger middleware records them.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid "+paramName)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
