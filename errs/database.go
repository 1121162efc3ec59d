package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
	ErrStorageWrite              = errors.New("file storage write failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		Kind:       KindNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError creates a new database error with details about the operation.
// message is what the client sees; details names the failed operation and is echoed
// as the error detail of a 5xx response.
func NewDatabaseError(message, operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Check for common database errors and provide more specific messages
	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "foreign key constraint"), strings.Contains(errStr, "FOREIGN KEY constraint"):
			return &ApiErr{
				StatusCode: http.StatusInternalServerError,
				Kind:       KindStore,
				err:        errors.New(message),
				Details:    fmt.Sprintf("invalid reference in %s", entity),
				Cause:      fmt.Errorf("%w: %w", ErrForeignKeyConstraint, cause),
			}
		case strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "failed to connect"):
			return &ApiErr{
				StatusCode: http.StatusInternalServerError,
				Kind:       KindStore,
				err:        errors.New(message),
				Details:    "Unable to connect to database",
				Cause:      fmt.Errorf("%w: %w", ErrDatabaseConnection, cause),
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindStore,
		err:        errors.New(message),
		Details:    details,
		Cause:      fmt.Errorf("%w: %w", ErrDatabaseQuery, cause),
	}
}

// NewUniqueConstraintViolationError reports a uniqueness conflict. Clients expect
// 400 here, not 409.
func NewUniqueConstraintViolationError(message, entity, field string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindConflict,
		err:        errors.New(message),
		Details:    fmt.Sprintf("Unique constraint violation on %s.%s", entity, field),
		Cause:      fmt.Errorf("%w: %w", ErrUniqueConstraintViolation, cause),
		Field:      field,
	}
}

func NewStorageWriteError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindInternal,
		err:        errors.New(message),
		Details:    "Failed to store uploaded file",
		Cause:      fmt.Errorf("%w: %w", ErrStorageWrite, cause),
	}
}
