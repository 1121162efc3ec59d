package api

import (
	"net/http"
	"time"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    db,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// health reports process uptime and whether the store answers
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}

		status := http.StatusOK
		if err := h.database.Ping(); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed")
			response.Status = "degraded"
			response.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}

		h.responder.WriteJSONWithStatus(w, status, response)
	}
}
