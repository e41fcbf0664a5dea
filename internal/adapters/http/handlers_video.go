package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/contracts"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

func (h *Handler) videoStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	out, err := h.service.JobStatus(r.Context(), actor, r.URL.Query().Get("id"), r.URL.Query().Get("model"))
	if err != nil {
		writeDomainError(w, err, requestIDFromContext(r.Context()))
		return
	}
	noStore(w)
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) videoPlay(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	source, err := h.service.AuthorizePlayback(r.Context(), actor, r.URL.Query().Get("id"), r.URL.Query().Get("token"))
	if err != nil {
		writeDomainError(w, err, requestIDFromContext(r.Context()))
		return
	}

	// The inbound Range header is forwarded verbatim so seeking works
	// exactly as it would against the upstream.
	object, err := h.fetcher.Fetch(r.Context(), source.SourceURL, r.Header.Get("Range"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "playback fetch failed", "job_id", source.JobID, "error", err)
		writeDomainError(w, domain.ErrUpstreamUnavailable, requestIDFromContext(r.Context()))
		return
	}
	defer object.Body.Close()

	if object.StatusCode != http.StatusOK && object.StatusCode != http.StatusPartialContent {
		h.logger.WarnContext(r.Context(), "playback upstream status", "job_id", source.JobID, "status_code", object.StatusCode)
		writeDomainError(w, domain.ErrUpstreamUnavailable, requestIDFromContext(r.Context()))
		return
	}

	noStore(w)
	w.Header().Set("Accept-Ranges", "bytes")
	if object.ContentType != "" {
		w.Header().Set("Content-Type", object.ContentType)
	} else {
		w.Header().Set("Content-Type", "video/mp4")
	}
	if object.ContentLength != "" {
		w.Header().Set("Content-Length", object.ContentLength)
	}
	if object.ContentRange != "" {
		w.Header().Set("Content-Range", object.ContentRange)
	}
	w.WriteHeader(object.StatusCode)
	h.pipe(w, r, object.Body, source.JobID)
}

func (h *Handler) videoDownload(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	source, err := h.service.AuthorizeDownload(r.Context(), actor, r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err, requestIDFromContext(r.Context()))
		return
	}

	// Downloads are always full-file; no Range forwarding.
	object, err := h.fetcher.Fetch(r.Context(), source.SourceURL, "")
	if err != nil {
		h.logger.WarnContext(r.Context(), "download fetch failed", "job_id", source.JobID, "error", err)
		writeDomainError(w, domain.ErrUpstreamUnavailable, requestIDFromContext(r.Context()))
		return
	}
	defer object.Body.Close()

	if object.StatusCode != http.StatusOK {
		h.logger.WarnContext(r.Context(), "download upstream status", "job_id", source.JobID, "status_code", object.StatusCode)
		writeDomainError(w, domain.ErrUpstreamUnavailable, requestIDFromContext(r.Context()))
		return
	}

	noStore(w)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", source.FileName))
	if object.ContentType != "" {
		w.Header().Set("Content-Type", object.ContentType)
	} else {
		w.Header().Set("Content-Type", "video/mp4")
	}
	if object.ContentLength != "" {
		w.Header().Set("Content-Length", object.ContentLength)
	}
	w.WriteHeader(http.StatusOK)
	h.pipe(w, r, object.Body, source.JobID)
}

// pipe streams upstream bytes to the client without buffering the
// payload. A copy error after headers are out usually means the client
// went away; the context cancellation has already stopped the upstream
// fetch at that point.
func (h *Handler) pipe(w http.ResponseWriter, r *http.Request, body io.Reader, jobID string) {
	if _, err := io.Copy(w, body); err != nil {
		h.logger.DebugContext(r.Context(), "stream copy ended early", "job_id", jobID, "error", err)
	}
}

func (h *Handler) reportProgress(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.ProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	if req.SecondsWatched == nil || req.DurationSeconds == nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "secondsWatched and durationSeconds must be numbers", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.ReportProgress(r.Context(), actor, domain.ProgressReport{
		VideoID:         req.ID,
		SecondsWatched:  *req.SecondsWatched,
		DurationSeconds: *req.DurationSeconds,
		Ended:           req.Ended,
	})
	if err != nil {
		writeDomainError(w, err, requestIDFromContext(r.Context()))
		return
	}
	noStore(w)
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	out, err := h.service.GetProgress(r.Context(), actor, r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err, requestIDFromContext(r.Context()))
		return
	}
	noStore(w)
	writeJSON(w, http.StatusOK, out)
}
