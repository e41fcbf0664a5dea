package ports

import (
	"context"
	"io"
)

// Credential is a resolved upstream provider binding for one model.
type Credential struct {
	Provider string
	BaseURL  string
	APIKey   string
}

// CredentialResolver maps a model identifier to a provider credential.
// Implementations fall back to environment-configured keys; a missing
// key surfaces as domain.ErrProviderNotConfigured.
type CredentialResolver interface {
	Resolve(ctx context.Context, model string) (Credential, error)
}

// JobSnapshot is the raw view of an upstream generation job. Exactly
// one of OutputURL / FileID may identify the finished asset; both may
// be empty for a completed job with no resolvable output.
type JobSnapshot struct {
	ID           string
	Status       string
	Progress     int
	ErrorMessage string
	OutputURL    string
	FileID       string
	CompletedAt  int64
}

// GenerationClient polls the upstream video-generation API. Status
// calls must bypass caches so every poll reflects live state.
type GenerationClient interface {
	JobStatus(ctx context.Context, cred Credential, jobID string) (JobSnapshot, error)
	FileContentURL(cred Credential, fileID string) string
}

// MediaObject is an upstream media response ready to be piped to a
// client. Body must be closed by the consumer.
type MediaObject struct {
	StatusCode    int
	ContentType   string
	ContentLength string
	ContentRange  string
	Body          io.ReadCloser
}

// MediaFetcher performs the outbound streaming fetch for the proxies.
// rangeHeader is forwarded verbatim when non-empty. The fetch must
// honor ctx cancellation so client disconnects stop the transfer.
type MediaFetcher interface {
	Fetch(ctx context.Context, url, rangeHeader string) (*MediaObject, error)
}
