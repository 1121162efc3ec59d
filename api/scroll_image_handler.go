package api

import (
	"net/http"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/Sandanu06/citf-backend-v1/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type scrollImageHandler struct {
	responder      Responder
	logger         zerolog.Logger
	repo           *database.ScrollImageRepo
	receiver       *storage.Receiver
	cleaner        *storage.Cleaner
	maxUploadBytes int64
}

func newScrollImageHandler(repo *database.ScrollImageRepo, receiver *storage.Receiver, cleaner *storage.Cleaner, maxUploadBytes int64) scrollImageHandler {
	logger := log.With().Str("handlerName", "scrollImageHandler").Logger()

	return scrollImageHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		repo:           repo,
		receiver:       receiver,
		cleaner:        cleaner,
		maxUploadBytes: maxUploadBytes,
	}
}

type scrollImagesCreatedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// createScrollImages stores any number of gallery images
func (h scrollImageHandler) createScrollImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer cleanupForm(r)

		if err := parseMultipart(r, h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(storage.Files(r.MultipartForm, "images")) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("No images uploaded", "images"))
			return
		}

		uploads, err := h.receiver.Receive(r.MultipartForm, "images", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		urls := storage.URLs(uploads)

		if _, err := h.repo.AddAll(urls); err != nil {
			h.cleaner.Remove(urls...)
			h.responder.WriteError(w, errs.NewDatabaseError("Error saving scroll images", "insert", "scroll images", err))
			return
		}

		h.responder.WriteJSON(w, scrollImagesCreatedResponse{
			Message: "Scroll images uploaded successfully!",
			Count:   len(urls),
		})
	}
}

// getAllScrollImages lists gallery images, most recent first
func (h scrollImageHandler) getAllScrollImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := h.repo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Failed to fetch scroll images", "find", "scroll images", err))
			return
		}
		if images == nil {
			images = []models.ScrollImage{}
		}

		h.responder.WriteJSON(w, images)
	}
}

// deleteScrollImage removes one gallery image row and then its file
func (h scrollImageHandler) deleteScrollImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := parseID(r, "scroll image")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		image, err := h.repo.FindByID(imageID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error deleting scroll image", "find", "scroll image", err))
			return
		}
		if image == nil {
			h.responder.WriteError(w, errs.NewNotFound("Scroll image"))
			return
		}

		if _, err := h.repo.Delete(imageID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error deleting scroll image", "delete", "scroll image", err))
			return
		}

		h.cleaner.Remove(image.ImageURL)
		h.responder.WriteMessage(w, http.StatusOK, "Scroll image deleted successfully")
	}
}
