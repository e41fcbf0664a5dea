package domain

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDownloadLocked        = errors.New("watch the video to enable download")
	ErrNotFound              = errors.New("not found")
	ErrInvalidSource         = errors.New("video source not allowed")
	ErrUpstreamUnavailable   = errors.New("upstream fetch failed")
	ErrProviderNotConfigured = errors.New("no api key configured for provider")
)
