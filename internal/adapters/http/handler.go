package http

import (
	"log/slog"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/application"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

type Handler struct {
	service *application.Service
	fetcher ports.MediaFetcher
	logger  *slog.Logger
}

func NewHandler(service *application.Service, fetcher ports.MediaFetcher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, fetcher: fetcher, logger: logger}
}
