package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	storageKind string
}

func newHealthHandler(storageKind string) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		storageKind: storageKind,
	}
}

// health reports liveness and the selected storage backend
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Health status"
// @Router /api/health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"storage":   h.storageKind,
		})
	}
}
