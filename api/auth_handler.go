package api

import (
	"net/http"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/Sandanu06/citf-backend-v1/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const credentialsRequired = "Username and password required"

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	repo         *database.UserRepo
	hasher       services.PasswordHasher
	maxBodyBytes int64
}

func newAuthHandler(repo *database.UserRepo, hasher services.PasswordHasher, maxBodyBytes int64) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		repo:         repo,
		hasher:       hasher,
		maxBodyBytes: maxBodyBytes,
	}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h authHandler) readCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := decodeJSON(r, h.maxBodyBytes, &req); err != nil {
		return req, err
	}
	if err := validateRequest(req, credentialsRequired); err != nil {
		return req, err
	}
	return req, nil
}

// register stores a new user with a bcrypt digest of the password
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.readCredentials(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		digest, err := h.hasher.Hash(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Error registering user", err))
			return
		}

		user := models.User{Username: req.Username, PasswordHash: digest}
		if err := h.repo.Add(&user); err != nil {
			if database.IsUniqueViolation(err) {
				h.responder.WriteError(w, errs.NewUniqueConstraintViolationError("Username already exists", "users", "username", err))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("Error registering user", "insert", "user", err))
			return
		}

		h.logger.Info().Str("username", user.Username).Msg("user registered")
		h.responder.WriteMessage(w, http.StatusCreated, "User registered successfully")
	}
}

// login checks credentials only; no session is issued. Unknown users and
// wrong passwords get the same answer.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.readCredentials(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.repo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error logging in", "find", "user", err))
			return
		}
		if user == nil || !h.hasher.Verify(req.Password, user.PasswordHash) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Login successful")
	}
}
