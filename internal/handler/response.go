package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"printstock/internal/domain"
	"printstock/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "reconciliation session not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: png, jpeg, webp, gif, pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrSessionPhase):
		return http.StatusConflict, "INVALID_PHASE", "operation not valid in current session phase"
	case errors.Is(err, domain.ErrDecisionNotFound):
		return http.StatusNotFound, "DECISION_NOT_FOUND", "no decision exists for this item"
	case errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest, "NAME_REQUIRED", "name is required"
	case errors.Is(err, domain.ErrSubtypeRequired):
		return http.StatusBadRequest, "SUBTYPE_REQUIRED", "material subtype is required"
	case errors.Is(err, domain.ErrNegativePrice):
		return http.StatusBadRequest, "NEGATIVE_PRICE", "price must not be negative"
	case errors.Is(err, domain.ErrInvalidUnitCost):
		return http.StatusBadRequest, "INVALID_UNIT_COST", "unit cost is not a valid amount"
	case errors.Is(err, domain.ErrNoLinkTarget):
		return http.StatusBadRequest, "NO_LINK_TARGET", "no existing record selected to link"
	case errors.Is(err, domain.ErrNotReconciled):
		return http.StatusConflict, "NOT_RECONCILED", "session has not completed reconciliation"
	case errors.Is(err, domain.ErrParseFailed):
		// The parser's message is surfaced verbatim so the user can act on it.
		return http.StatusBadGateway, "PARSE_FAILED", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 && status != http.StatusBadGateway {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
