package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpInvalidQueryError    = "invalid_query"
	HttpPayloadTooLargeError = "payload_too_large"
	HttpRateLimitedError     = "rate_limited"
)

// ErrorResponse is the error response body for ingestion and search errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
