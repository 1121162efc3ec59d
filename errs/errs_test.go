package errs

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestApiErrUnwrapsSentinelsAndCauses(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.username")
	err := NewUniqueConstraintViolationError("Username already exists", "users", "username", cause)

	if !errors.Is(err, ErrUniqueConstraintViolation) {
		t.Fatal("sentinel not found through Cause")
	}
	if !errors.Is(err, cause) {
		t.Fatal("driver error not found through Cause")
	}
	if err.StatusCode != http.StatusBadRequest || err.Kind != KindConflict || err.Field != "username" {
		t.Fatalf("unexpected error %+v", err)
	}
	if err.Message() != "Username already exists" {
		t.Fatalf("Message = %q", err.Message())
	}
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		sentinel error
		details  string
	}{
		{"generic", errors.New("syntax error"), ErrDatabaseQuery, "Failed to find projects"},
		{"foreign key", errors.New("violates foreign key constraint"), ErrForeignKeyConstraint, "invalid reference in projects"},
		{"connection", errors.New("dial tcp: connection refused"), ErrDatabaseConnection, "Unable to connect to database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("Failed to fetch projects", "find", "projects", tt.cause)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("sentinel %v not in chain of %v", tt.sentinel, err)
			}
			if err.Details != tt.details || err.StatusCode != http.StatusInternalServerError || err.Kind != KindStore {
				t.Fatalf("unexpected error %+v", err)
			}
			if !strings.Contains(err.GetFullError(), tt.cause.Error()) {
				t.Fatalf("full error misses cause: %s", err.GetFullError())
			}
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		err  *ApiErr
		kind Kind
	}{
		{NewBadRequestError("x"), KindValidation},
		{NewMissingRequiredFieldError("Title and Description are required", "title"), KindValidation},
		{NewNotFound("project"), KindNotFound},
		{NewUnauthorizedError("Invalid credentials"), KindUnauthorized},
		{NewCORSError("https://evil.example"), KindForbidden},
		{NewApiErr(http.StatusTooManyRequests, "slow down"), KindInternal},
		{NewApiErr(http.StatusConflict, "taken"), KindConflict},
	}
	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("%v: kind = %s, want %s", tt.err, tt.err.Kind, tt.kind)
		}
	}
}

func TestSentinels(t *testing.T) {
	if !errors.Is(NewMissingRequiredFieldError("Video URL is required", "video_url"), ErrMissingRequiredField) {
		t.Error("missing field not detected")
	}
	if !errors.Is(NewTooManyFilesError("images", 5), ErrTooManyFiles) {
		t.Error("too many files not detected")
	}
	if !errors.Is(NewMaxBodySizeExceededError(10), ErrMaxBodySizeExceeded) {
		t.Error("body size not detected")
	}
	if !errors.Is(NewInvalidJSONError(errors.New("eof")), ErrInvalidJSON) {
		t.Error("invalid json not detected")
	}
	if !errors.Is(NewCORSError("https://evil.example"), ErrCORSBlocked) {
		t.Error("cors sentinel not detected")
	}
	notFound := NewNotFound("Video")
	if !errors.Is(notFound, ErrNotFound) || notFound.Message() != "Video not found" {
		t.Errorf("not found error = %q", notFound.Message())
	}
	if !errors.Is(NewStorageWriteError("x", errors.New("disk full")), ErrStorageWrite) {
		t.Error("storage sentinel not detected")
	}
}
