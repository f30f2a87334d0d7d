package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Aliases used throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeUnauthorized   = ErrCodeUnauthorized
	CodeForbidden      = ErrCodeForbidden
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	CodeDatabaseError     = ErrCodeDatabaseError
	CodeCacheError        = ErrCodeCacheError
	CodeMessageQueueError = ErrCodeExternalService
	CodeStorageError      = ErrCodeExternalService
)

// User Module Error Codes
const (
	ErrCodeUserNotFound       ErrorCode = "USR_001"
	ErrCodeUserAlreadyExists  ErrorCode = "USR_002"
	ErrCodeInvalidCredentials ErrorCode = "USR_003"
	ErrCodeWeakPassword       ErrorCode = "USR_004"
)

// Lawyer Directory Error Codes
const (
	ErrCodeLawyerNotFound          ErrorCode = "LAW_001"
	ErrCodeLawyerInvalid           ErrorCode = "LAW_002"
	ErrCodeSpecializationUnknown   ErrorCode = "LAW_003"
	ErrCodeRosterUnavailable       ErrorCode = "LAW_004"
)

// Booking Module Error Codes
const (
	ErrCodeBookingNotFound      ErrorCode = "BKG_001"
	ErrCodeBookingStateInvalid  ErrorCode = "BKG_002"
	ErrCodePaymentDeclined      ErrorCode = "BKG_003"
	ErrCodePaymentAmountInvalid ErrorCode = "BKG_004"
	ErrCodePaymentMethodInvalid ErrorCode = "BKG_005"
)

// Knowledge Base Error Codes
const (
	ErrCodeKnowledgeBaseInvalid ErrorCode = "KB_001"
	ErrCodeKnowledgeBaseLoad    ErrorCode = "KB_002"
)

// AI Classifier Error Codes
const (
	ErrCodeAIModelNotAvailable ErrorCode = "AI_001"
	ErrCodeAIInferenceFailed   ErrorCode = "AI_002"
	ErrCodeAIResponseInvalid   ErrorCode = "AI_003"
	ErrCodeAICircuitOpen       ErrorCode = "AI_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusForbidden,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeUserNotFound:       http.StatusNotFound,
	ErrCodeUserAlreadyExists:  http.StatusConflict,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeWeakPassword:       http.StatusBadRequest,

	ErrCodeLawyerNotFound:        http.StatusNotFound,
	ErrCodeLawyerInvalid:         http.StatusBadRequest,
	ErrCodeSpecializationUnknown: http.StatusBadRequest,
	ErrCodeRosterUnavailable:     http.StatusServiceUnavailable,

	ErrCodeBookingNotFound:      http.StatusNotFound,
	ErrCodeBookingStateInvalid:  http.StatusConflict,
	ErrCodePaymentDeclined:      http.StatusPaymentRequired,
	ErrCodePaymentAmountInvalid: http.StatusBadRequest,
	ErrCodePaymentMethodInvalid: http.StatusBadRequest,

	ErrCodeKnowledgeBaseInvalid: http.StatusInternalServerError,
	ErrCodeKnowledgeBaseLoad:    http.StatusInternalServerError,

	ErrCodeAIModelNotAvailable: http.StatusServiceUnavailable,
	ErrCodeAIInferenceFailed:   http.StatusBadGateway,
	ErrCodeAIResponseInvalid:   http.StatusBadGateway,
	ErrCodeAICircuitOpen:       http.StatusServiceUnavailable,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeUserNotFound:       "user not found",
	ErrCodeUserAlreadyExists:  "user already exists",
	ErrCodeInvalidCredentials: "invalid email or password",
	ErrCodeWeakPassword:       "password too weak",

	ErrCodeLawyerNotFound:        "lawyer not found",
	ErrCodeLawyerInvalid:         "invalid lawyer profile",
	ErrCodeSpecializationUnknown: "unknown specialization",
	ErrCodeRosterUnavailable:     "lawyer roster unavailable",

	ErrCodeBookingNotFound:      "booking not found",
	ErrCodeBookingStateInvalid:  "booking is not in a valid state for this operation",
	ErrCodePaymentDeclined:      "payment declined",
	ErrCodePaymentAmountInvalid: "payment amount does not match the consultation fee",
	ErrCodePaymentMethodInvalid: "unsupported payment method",

	ErrCodeKnowledgeBaseInvalid: "knowledge base failed validation",
	ErrCodeKnowledgeBaseLoad:    "failed to load knowledge base",

	ErrCodeAIModelNotAvailable: "AI model not available",
	ErrCodeAIInferenceFailed:   "AI inference failed",
	ErrCodeAIResponseInvalid:   "AI response could not be used",
	ErrCodeAICircuitOpen:       "AI classifier temporarily disabled",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
