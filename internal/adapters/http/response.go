package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/contracts"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{Error: message, Code: code, RequestID: requestID})
}

func writeDomainError(w http.ResponseWriter, err error, requestID string) {
	status, code := mapDomainError(err)
	writeError(w, status, code, errorMessage(err), requestID)
}

func mapDomainError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrInvalidSource):
		return http.StatusBadRequest, "INVALID_SOURCE"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrDownloadLocked):
		return http.StatusForbidden, "DOWNLOAD_LOCKED"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "BAD_GATEWAY"
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return http.StatusInternalServerError, "PROVIDER_NOT_CONFIGURED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// errorMessage keeps client-facing text stable and free of internal
// detail; only domain sentinels surface verbatim.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDownloadLocked):
		return "Watch the video to enable download."
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidInput):
		return "missing or invalid parameters"
	case errors.Is(err, domain.ErrInvalidSource):
		return "video source not allowed"
	case errors.Is(err, domain.ErrForbidden):
		return "invalid playback token"
	case errors.Is(err, domain.ErrNotFound):
		return "video not found or expired"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream fetch failed"
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return "video provider not configured"
	default:
		return "internal server error"
	}
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
}
