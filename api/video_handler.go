package api

import (
	"net/http"
	"strings"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/Sandanu06/citf-backend-v1/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type videoHandler struct {
	responder    Responder
	logger       zerolog.Logger
	repo         *database.VideoRepo
	maxBodyBytes int64
}

func newVideoHandler(repo *database.VideoRepo, maxBodyBytes int64) videoHandler {
	logger := log.With().Str("handlerName", "videoHandler").Logger()

	return videoHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		repo:         repo,
		maxBodyBytes: maxBodyBytes,
	}
}

type videoRequest struct {
	VideoURL string `json:"video_url" validate:"required"`
}

type videoCreatedResponse struct {
	Message string `json:"message"`
	VideoID uint   `json:"videoId"`
}

// VideoItem is a listed video with its embeddable url.
type VideoItem struct {
	ID    uint   `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// createVideo stores a trimmed video link
func (h videoHandler) createVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req videoRequest
		if err := decodeJSON(r, h.maxBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req.VideoURL = strings.TrimSpace(req.VideoURL)
		if err := validateRequest(req, "Video URL is required"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video := models.Video{VideoURL: req.VideoURL}
		if err := h.repo.Add(&video); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error inserting video URL", "insert", "video", err))
			return
		}

		h.responder.WriteJSON(w, videoCreatedResponse{
			Message: "Video URL added successfully",
			VideoID: video.ID,
		})
	}
}

// getAllVideos lists videos newest first with watch links rewritten for embedding
func (h videoHandler) getAllVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videos, err := h.repo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error fetching videos", "find", "videos", err))
			return
		}

		items := make([]VideoItem, 0, len(videos))
		for _, v := range videos {
			items = append(items, VideoItem{
				ID:    v.ID,
				URL:   services.EmbedURL(v.VideoURL),
				Title: services.VideoTitle,
			})
		}
		h.responder.WriteJSON(w, items)
	}
}

// deleteVideo removes a video after checking it exists
func (h videoHandler) deleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, err := parseID(r, "video")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		exists, err := h.repo.Exists(videoID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error deleting video", "find", "video", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFound("Video"))
			return
		}

		if _, err := h.repo.Delete(videoID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error deleting video", "delete", "video", err))
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Video deleted successfully")
	}
}
