package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

// Client talks to the upstream video-generation API. The provider base
// URL and key come from the resolved credential, so one client serves
// every configured provider.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

type jobPayload struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	OutputURL   string `json:"output_url"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
	FileID      string `json:"file_id"`
	CompletedAt int64  `json:"completed_at"`
	Error       *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func (c *Client) JobStatus(ctx context.Context, cred ports.Credential, jobID string) (ports.JobSnapshot, error) {
	endpoint := fmt.Sprintf("%s/videos/%s", strings.TrimSuffix(cred.BaseURL, "/"), jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.JobSnapshot{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.APIKey)
	// Every poll must see live state.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.JobSnapshot{}, fmt.Errorf("poll job status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return ports.JobSnapshot{}, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var payload jobPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.JobSnapshot{}, fmt.Errorf("decode job payload: %w", err)
	}

	snap := ports.JobSnapshot{
		ID:          payload.ID,
		Status:      payload.Status,
		Progress:    payload.Progress,
		FileID:      payload.FileID,
		CompletedAt: payload.CompletedAt,
	}
	if snap.ID == "" {
		snap.ID = jobID
	}
	// Providers disagree on the output field name.
	for _, candidate := range []string{payload.OutputURL, payload.URL, payload.DownloadURL} {
		if candidate != "" {
			snap.OutputURL = candidate
			break
		}
	}
	// Some providers embed an error object in an otherwise-200 body.
	if payload.Error != nil && payload.Error.Message != "" {
		snap.ErrorMessage = payload.Error.Message
	}
	return snap, nil
}

// FileContentURL builds the provider's file-content location for jobs
// that report a file identifier instead of a direct URL.
func (c *Client) FileContentURL(cred ports.Credential, fileID string) string {
	return fmt.Sprintf("%s/videos/%s/content", strings.TrimSuffix(cred.BaseURL, "/"), fileID)
}
