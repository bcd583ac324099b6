package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	apperrors "whisper-web/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation           ErrorKind = "validation"
	KindBadRequest           ErrorKind = "bad_request"
	KindNotFound             ErrorKind = "not_found"
	KindPayloadTooLarge      ErrorKind = "payload_too_large"
	KindMissingCredential    ErrorKind = "missing_credential"
	KindUnsupportedMedia     ErrorKind = "unsupported_media_type"
	KindTranscriptionService ErrorKind = "transcription_service_error"
	KindInternal             ErrorKind = "internal"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindMissingCredential:
		return http.StatusServiceUnavailable
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindTranscriptionService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewPayloadTooLargeError reports an upload above limitBytes.
func NewPayloadTooLargeError(limitBytes int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("audio upload exceeds the %d MB limit", limitBytes>>20),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// FromError maps a domain error onto the API envelope. Unknown errors
// become internal errors with a generic message.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case stderrors.Is(err, apperrors.ErrMissingCredential):
		return &APIError{Kind: KindMissingCredential, Message: err.Error()}
	case stderrors.Is(err, apperrors.ErrUnsupportedMediaType):
		return &APIError{Kind: KindUnsupportedMedia, Message: err.Error()}
	case stderrors.Is(err, apperrors.ErrTranscriptionService):
		apiErr := &APIError{Kind: KindTranscriptionService, Message: err.Error()}
		var svcErr *apperrors.ServiceError
		if stderrors.As(err, &svcErr) {
			apiErr.Details = map[string]string{"provider": svcErr.Provider}
			if svcErr.StatusCode != 0 {
				apiErr.Code = fmt.Sprintf("upstream_%d", svcErr.StatusCode)
			}
		}
		return apiErr
	default:
		return NewInternalError("Internal server error")
	}
}
