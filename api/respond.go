package api

import (
	"errors"
	"net/http"

	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// message is the body of every non-list success response.
type message struct {
	Message string `json:"message"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONWithStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONWithStatus(w http.ResponseWriter, status int, data any) {
	// Marshal the data first so a failure can still become a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteMessage(w http.ResponseWriter, status int, msg string) {
	r.WriteJSONWithStatus(w, status, message{Message: msg})
}

// WriteError renders err as {"message", "status":"error"} plus "field" for field
// validation errors, "details" for other client errors and "error" for server errors.
// Causes are logged, never echoed.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONWithStatus(w, http.StatusInternalServerError, ErrorResponse{
			Message: "An unexpected error occurred",
			Status:  "error",
			Error:   "Internal Server Error",
		})
		return
	}

	response := ErrorResponse{
		Message: apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		response.Error = apiErr.Details
		if response.Error == "" {
			response.Error = http.StatusText(apiErr.StatusCode)
		}
		r.logger.Error().
			Str("kind", string(apiErr.Kind)).
			Str("error", apiErr.GetFullError()).
			Msg(apiErr.Message())
	} else {
		response.Details = apiErr.Details
		r.logger.Debug().
			Int("status", apiErr.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Msg(apiErr.Error())
	}

	r.WriteJSONWithStatus(w, apiErr.StatusCode, response)
}
