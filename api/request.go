package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// multipartMemory is how much of a multipart body is kept in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

// parseID reads a positive integer id from the URL.
func parseID(r *http.Request, resource string) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apiErr := errs.NewBadRequestError("invalid " + resource + " id")
		apiErr.Field = "id"
		return 0, apiErr
	}
	return uint(id), nil
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, maxBytes int64, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxBytes)
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// isJSON reports whether the request body is declared as JSON.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// parseMultipart parses multipart and urlencoded bodies. Other content types
// yield an empty form, so required-field checks still produce a 400.
func parseMultipart(r *http.Request, maxBytes int64) error {
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return errs.NewMaxBodySizeExceededError(maxBytes)
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			if errors.As(err, &maxErr) {
				return errs.NewMaxBodySizeExceededError(maxBytes)
			}
			return errs.NewMalformedPayloadError("form", err)
		}
		return nil
	default:
		return errs.NewMalformedPayloadError("multipart", err)
	}
}

// cleanupForm removes temporary files the multipart parser created.
func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}
