package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/services"
)

type uploadsHandler struct {
	responder Responder
	logger    zerolog.Logger
	disk      *services.DiskAssetStore // nil in inline asset mode
}

func newUploadsHandler(disk *services.DiskAssetStore) uploadsHandler {
	logger := log.With().Str("handlerName", "uploadsHandler").Logger()
	return uploadsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		disk:      disk,
	}
}

// serveFile streams an uploaded asset from disk
// @Summary Serve uploaded file
// @Tags Uploads
// @Param filename path string true "Asset filename"
// @Success 200 {file} binary "File contents"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /uploads/{filename} [get]
func (h uploadsHandler) serveFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Only meaningful with disk-backed assets; inline deployments have
		// nothing to serve.
		if h.disk == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("file not found"))
			return
		}

		path, err := h.disk.Resolve(chi.URLParam(r, "filename"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		http.ServeFile(w, r, path)
	}
}
