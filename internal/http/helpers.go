package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/quotes"
	"github.com/mrlokans/quotebook/internal/services"
)

// Machine-readable error codes.
const (
	CodeEmptyField       = "empty_field"
	CodeMalformedPayload = "malformed_payload"
	CodeNetworkFailure   = "network_failure"
	CodeUnknownCategory  = "unknown_category"
	CodeNotFound         = "not_found"
	CodeNotPersisted     = "not_persisted"
)

// HeaderNotPersisted marks a successful response whose change was applied
// in memory but not saved.
const HeaderNotPersisted = "X-Quotes-Not-Persisted"

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message, code string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: code})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondQuoteError maps quote errors to their status and code. Anything
// unrecognised becomes a 500.
func respondQuoteError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, quotes.ErrEmptyField):
		respondBadRequest(c, err.Error(), CodeEmptyField)
	case errors.Is(err, quotes.ErrMalformedPayload):
		respondBadRequest(c, err.Error(), CodeMalformedPayload)
	case errors.Is(err, services.ErrUnknownCategory):
		respondBadRequest(c, err.Error(), CodeUnknownCategory)
	case errors.Is(err, services.ErrNotPersisted):
		log.Printf("Internal error (%s): %v", context, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "change was applied but could not be saved", Code: CodeNotPersisted})
	case errors.Is(err, quotes.ErrNetworkFailure):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: CodeNetworkFailure})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parsePagination reads limit and offset query parameters, clamping limit
// to [1, 100].
func parsePagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
