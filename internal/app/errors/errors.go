package errors

import (
	stderrors "errors"
	"fmt"
)

// Failure taxonomy of a transcription request. Every error returned by the
// request handler matches exactly one of these with errors.Is.
var (
	// ErrMissingCredential means no API key is configured for the provider.
	ErrMissingCredential = New("missing credential")

	// ErrUnsupportedMediaType means the payload was rejected before submission.
	ErrUnsupportedMediaType = New("unsupported media type")

	// ErrTranscriptionService means the upstream call failed or returned an error.
	ErrTranscriptionService = New("transcription service error")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// ServiceError is returned when the upstream transcription service fails.
// Message carries the upstream text verbatim so it can be shown to the user.
type ServiceError struct {
	Provider   string
	StatusCode int
	Message    string
	cause      error
}

// NewServiceError builds a ServiceError. statusCode is 0 for transport failures.
func NewServiceError(provider string, statusCode int, message string, cause error) *ServiceError {
	return &ServiceError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
		cause:      cause,
	}
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s returned %d: %s", ErrTranscriptionService.message, e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrTranscriptionService.message, e.Provider, e.Message)
}

// Unwrap returns the transport or SDK error, if any.
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// Is makes every ServiceError match ErrTranscriptionService.
func (e *ServiceError) Is(target error) bool {
	return target == ErrTranscriptionService
}

// MissingCredential reports the environment variable the provider expected.
func MissingCredential(provider, envVar string) error {
	return Wrapf(ErrMissingCredential, "%s provider requires %s", provider, envVar)
}

// UnsupportedMediaType reports why the payload was rejected.
func UnsupportedMediaType(reason string) error {
	return Wrap(ErrUnsupportedMediaType, reason)
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	var svcErr *ServiceError
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &svcErr):
		return "Transcription failed: " + svcErr.Message
	case stderrors.Is(err, ErrMissingCredential):
		return "The server has no API key configured for transcription. Set it in the environment and restart."
	case stderrors.Is(err, ErrUnsupportedMediaType):
		return "Unsupported audio: " + cause(err)
	default:
		return "An error occurred: " + err.Error()
	}
}

// cause returns the outermost context message of a wrapped sentinel.
func cause(err error) string {
	var e *Error
	if stderrors.As(err, &e) && e.cause != nil {
		return e.message
	}
	return err.Error()
}
