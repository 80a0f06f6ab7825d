package errors

import "net/http"

// ErrorCode is a string identifier for a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	CodeOK         ErrorCode = "OK"
	CodeUnknown    ErrorCode = "COMMON_000"
	CodeInternal   ErrorCode = "COMMON_001"
	CodeBadRequest ErrorCode = "COMMON_002"
	CodeNotFound   ErrorCode = "COMMON_003"
	CodeTimeout    ErrorCode = "COMMON_004"
	CodeValidation ErrorCode = "COMMON_005"
)

// Panel validation error codes. These never leave the process: they are
// raised before any network call and surfaced as user-visible warnings.
const (
	CodeVibeMissing      ErrorCode = "PANEL_001"
	CodeVibeKindMismatch ErrorCode = "PANEL_002"
	CodeTimeSpecMissing  ErrorCode = "PANEL_003"
	CodeSubmitInFlight   ErrorCode = "PANEL_004"
)

// Gateway error codes.
const (
	CodeBackendUnreachable ErrorCode = "GW_001"
	CodeBackendError       ErrorCode = "GW_002"
	CodeResponseMalformed  ErrorCode = "GW_003"
)

// Map adapter error codes.
const (
	CodeRendererInit ErrorCode = "MAP_001"
)

// Devstub server error codes.
const (
	CodeVibeUnknown    ErrorCode = "STUB_001"
	CodeAdvisorUnknown ErrorCode = "STUB_002"
	CodeNoData         ErrorCode = "STUB_003"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes. Used by the
// devstub server when rendering an AppError as a JSON error response.
var errorCodeHTTPStatus = map[ErrorCode]int{
	CodeInternal:   http.StatusInternalServerError,
	CodeBadRequest: http.StatusBadRequest,
	CodeNotFound:   http.StatusNotFound,
	CodeTimeout:    http.StatusGatewayTimeout,
	CodeValidation: http.StatusUnprocessableEntity,

	CodeVibeMissing:      http.StatusBadRequest,
	CodeVibeKindMismatch: http.StatusBadRequest,
	CodeTimeSpecMissing:  http.StatusBadRequest,
	CodeSubmitInFlight:   http.StatusConflict,

	CodeBackendUnreachable: http.StatusBadGateway,
	CodeBackendError:       http.StatusBadGateway,
	CodeResponseMalformed:  http.StatusBadGateway,

	CodeRendererInit: http.StatusInternalServerError,

	CodeVibeUnknown:    http.StatusBadRequest,
	CodeAdvisorUnknown: http.StatusBadRequest,
	CodeNoData:         http.StatusNotFound,
}

// errorCodeMessage maps ErrorCodes to default user-facing messages.
var errorCodeMessage = map[ErrorCode]string{
	CodeUnknown:    "something went wrong",
	CodeInternal:   "internal error",
	CodeBadRequest: "bad request",
	CodeNotFound:   "resource not found",
	CodeTimeout:    "request timed out",
	CodeValidation: "validation failed",

	CodeVibeMissing:      "select a vibe first",
	CodeVibeKindMismatch: "the selected vibe does not match this panel",
	CodeTimeSpecMissing:  "pick a month or a date range first",
	CodeSubmitInFlight:   "a request is already in progress",

	CodeBackendUnreachable: "could not reach the analysis service",
	CodeBackendError:       "the analysis service returned an error",
	CodeResponseMalformed:  "the analysis service returned an unexpected response",

	CodeRendererInit: "map failed to initialize",

	CodeVibeUnknown:    "unknown vibe",
	CodeAdvisorUnknown: "unknown advisor type",
	CodeNoData:         "no valid data found",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode,
// defaulting to 500 for unmapped codes.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "something went wrong"
}

// IsClientError reports whether the ErrorCode maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}
