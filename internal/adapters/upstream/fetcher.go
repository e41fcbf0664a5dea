package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

// Fetcher performs the outbound media fetch for the streaming proxies.
// There is no overall client timeout: transfers can legitimately run
// for minutes, so only the time to first byte is bounded. The request
// context carries the inbound connection's cancellation, which aborts
// the upstream transfer when the client goes away.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(responseHeaderTimeout time.Duration) *Fetcher {
	if responseHeaderTimeout <= 0 {
		responseHeaderTimeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: responseHeaderTimeout,
			},
		},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url, rangeHeader string) (*ports.MediaObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build media request: %w", err)
	}
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	return &ports.MediaObject{
		StatusCode:    resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.Header.Get("Content-Length"),
		ContentRange:  resp.Header.Get("Content-Range"),
		Body:          resp.Body,
	}, nil
}
