package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/application"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyActor     ctxKey = "actor"
)

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoverMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"request_id", requestIDFromContext(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
					writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", requestIDFromContext(r.Context()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(payload []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(payload)
	r.bytes += n
	return n, err
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			statusCode := recorder.statusCode
			if statusCode == 0 {
				statusCode = http.StatusOK
			}
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", statusCode,
				"bytes", recorder.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", requestIDFromContext(r.Context()),
			}
			switch {
			case statusCode >= 500:
				logger.ErrorContext(r.Context(), "http request completed", fields...)
			case statusCode >= 400:
				logger.WarnContext(r.Context(), "http request completed", fields...)
			default:
				logger.InfoContext(r.Context(), "http request completed", fields...)
			}
		})
	}
}

// authMiddleware verifies the session bearer token and derives the
// viewer identity: email when present, else user id, else "anonymous".
// Every verification failure is a uniform 401.
func authMiddleware(verifier ports.SessionVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", requestIDFromContext(r.Context()))
				return
			}
			claims, err := verifier.Verify(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", requestIDFromContext(r.Context()))
				return
			}

			viewerID := strings.TrimSpace(claims.Email)
			if viewerID == "" {
				viewerID = strings.TrimSpace(claims.UserID)
			}
			if viewerID == "" {
				// Shared fallback bucket; sessions should always carry
				// a concrete identity.
				viewerID = "anonymous"
				logger.WarnContext(r.Context(), "session resolved to anonymous viewer",
					"request_id", requestIDFromContext(r.Context()),
					"session_id", claims.SessionID,
				)
			}

			actor := application.Actor{ViewerID: viewerID, RequestID: requestIDFromContext(r.Context())}
			ctx := context.WithValue(r.Context(), ctxKeyActor, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errMissingBearer = errors.New("missing bearer token")

func bearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errMissingBearer
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", errMissingBearer
	}
	return token, nil
}

func actorFromContext(ctx context.Context) application.Actor {
	if value := ctx.Value(ctxKeyActor); value != nil {
		if actor, ok := value.(application.Actor); ok {
			return actor
		}
	}
	return application.Actor{}
}

func requestIDFromContext(ctx context.Context) string {
	if value := ctx.Value(ctxKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
