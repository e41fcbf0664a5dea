package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/contracts"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

func NewRouter(handler *Handler, verifier ports.SessionVerifier, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(logger))
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, contracts.HealthResponse{Status: "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, contracts.HealthResponse{Status: "ready"})
	})

	r.Route("/video", func(r chi.Router) {
		r.Use(authMiddleware(verifier, logger))
		r.Get("/status", handler.videoStatus)
		r.Get("/play", handler.videoPlay)
		r.Get("/download", handler.videoDownload)
		r.Get("/progress", handler.getProgress)
		r.Post("/progress", handler.reportProgress)
	})
	return r
}
