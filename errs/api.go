package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an ApiErr independently of its HTTP status.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindStore        Kind = "store"
	KindInternal     Kind = "internal"
)

// Common error sentinel values
var (
	ErrCORSBlocked = errors.New("not allowed by CORS policy")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrTooManyFiles         = errors.New("too many files")
)

type ApiErr struct {
	StatusCode int
	Kind       Kind
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		Kind:       kindForStatus(statusCode),
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Message is the human readable part shown to clients, without details.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		// Check if the cause is also an ApiErr for recursive error handling
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
// the cause is part of the chain too, so sentinels wrapped into Cause match as well.
func (e *ApiErr) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.err}
	}
	return []error{e.err, e.Cause}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	default:
		return KindInternal
	}
}

// Common error constructors with appropriate HTTP status codes
func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, Kind: KindValidation, err: errors.New(message)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, Kind: KindUnauthorized, err: errors.New(message)}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, Kind: KindInternal, err: errors.New(message)}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindInternal,
		err:        errors.New(message),
		Details:    message,
		Cause:      cause,
	}
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		Kind:       KindForbidden,
		err:        fmt.Errorf("origin %s is %w", origin, ErrCORSBlocked),
	}
}

// Request & Input-Validation Error Constructors
func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

// NewMissingRequiredFieldError keeps message as the client-facing text; field names
// the first missing input.
func NewMissingRequiredFieldError(message, fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		err:        errors.New(message),
		Field:      fieldName,
		Cause:      ErrMissingRequiredField,
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		Kind:       KindValidation,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

func NewTooManyFilesError(field string, max int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		err:        ErrTooManyFiles,
		Details:    fmt.Sprintf("At most %d files are accepted in %s", max, field),
		Field:      field,
	}
}

func NewInvalidJSONError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		err:        ErrInvalidJSON,
		Details:    "Invalid JSON format",
		Cause:      cause,
		Field:      "json",
	}
}
