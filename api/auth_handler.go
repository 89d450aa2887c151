package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/auth"
	"github.com/anasir-dev/portfolio-backend/errs"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *auth.Service
}

func newAuthHandler(authService *auth.Service) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      authService,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// login exchanges admin credentials for a session token
// @Summary Admin login
// @Description Verifies the admin credentials and issues a 24h session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Admin credentials"
// @Success 200 {object} loginResponse "Session token"
// @Failure 401 {object} ErrorResponse "Unauthorized - invalid credentials"
// @Router /api/admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		token, err := h.auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, loginResponse{Token: token, Username: req.Username})
	}
}
