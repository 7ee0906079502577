package errors

const (
	HttpInternalError              = "internal_error"
	HttpInvalidJsonError           = "invalid_json"
	HttpInvalidSampleError         = "invalid_sample"
	HttpInvalidQueryError          = "invalid_query"
	HttpResourceNotFoundError      = "resource_not_found"
	HttpInconsistentResourcesError = "inconsistent_resources"
	HttpUnsupportedConditionsError = "unsupported_conditions"
)

// ErrorResponse is the error response body of the HTTP surface.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
