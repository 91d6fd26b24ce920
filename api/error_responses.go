package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gcbaptista/go-resume-matcher/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON          ErrorCode = "INVALID_JSON"
	ErrorCodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	ErrorCodePayloadTooLarge      ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrorCodeUnreadableDocument   ErrorCode = "UNREADABLE_DOCUMENT"

	// Server Error Codes (5xx)
	ErrorCodeInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrorCodeAnalysisFailed ErrorCode = "ANALYSIS_FAILED"
)

// Validation messages
const (
	MessageMissingInput     = "Please provide both resume and job description"
	MessageValidationFailed = "Request validation failed"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response.
// Success is always false so clients can branch on a single field.
type APIError struct {
	Success   bool          `json:"success"`
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Success:   false,
		Error:     message,
		Code:      code,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendValidationError sends a validation error with one detail per failed field
func SendValidationError(c *gin.Context, message string, verr *apperrors.ValidationError) {
	details := make([]ErrorDetail, len(verr.Fields))
	for i, f := range verr.Fields {
		code := f.Code
		if code == "" {
			code = "VALIDATION_ERROR"
		}
		details[i] = ErrorDetail{
			Field:   f.Field,
			Message: f.Message,
			Code:    code,
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, message, details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInvalidRequestError sends a standardized invalid request error
func SendInvalidRequestError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
		"Invalid request: "+err.Error())
}

// SendPayloadTooLargeError sends a standardized request body too large error
func SendPayloadTooLargeError(c *gin.Context, limit int64) {
	SendError(c, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge,
		"Request body exceeds the limit of "+formatBytes(limit))
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendAnalysisError maps an error returned by the analyzer onto a response.
func SendAnalysisError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &verr):
		message := MessageValidationFailed
		if verr.HasCode(apperrors.CodeRequired) {
			message = MessageMissingInput
		}
		SendValidationError(c, message, verr)
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		SendError(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedMediaType, err.Error())
	case errors.Is(err, apperrors.ErrUnreadableDocument):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeUnreadableDocument, err.Error())
	case errors.As(err, &tooLarge):
		SendPayloadTooLargeError(c, tooLarge.Limit)
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeAnalysisFailed,
			"Analysis failed: "+err.Error())
	}
}
