package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

func TestJobStatusRequestShape(t *testing.T) {
	var gotPath, gotAuth, gotCache string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCache = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(`{"id":"job-1","status":"processing","progress":55}`))
	}))
	defer server.Close()

	client := NewClient()
	cred := ports.Credential{Provider: "openai", BaseURL: server.URL + "/v1/", APIKey: "sk-test"}
	snap, err := client.JobStatus(context.Background(), cred, "job-1")
	if err != nil {
		t.Fatalf("job status: %v", err)
	}
	if gotPath != "/v1/videos/job-1" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotCache != "no-cache" {
		t.Fatalf("polls must bypass caches, got %q", gotCache)
	}
	if snap.Status != "processing" || snap.Progress != 55 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestJobStatusOutputFieldVariants(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"output_url", `{"id":"j","status":"completed","output_url":"https://videos.openai.com/a.mp4"}`, "https://videos.openai.com/a.mp4"},
		{"url", `{"id":"j","status":"completed","url":"https://videos.openai.com/b.mp4"}`, "https://videos.openai.com/b.mp4"},
		{"download_url", `{"id":"j","status":"completed","download_url":"https://videos.openai.com/c.mp4"}`, "https://videos.openai.com/c.mp4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient()
			snap, err := client.JobStatus(context.Background(), ports.Credential{BaseURL: server.URL, APIKey: "k"}, "j")
			if err != nil {
				t.Fatalf("job status: %v", err)
			}
			if snap.OutputURL != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, snap.OutputURL)
			}
		})
	}
}

func TestJobStatusEmbeddedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"j","status":"processing","error":{"message":"capacity exceeded","code":"overloaded"}}`))
	}))
	defer server.Close()

	client := NewClient()
	snap, err := client.JobStatus(context.Background(), ports.Credential{BaseURL: server.URL, APIKey: "k"}, "j")
	if err != nil {
		t.Fatalf("job status: %v", err)
	}
	if snap.ErrorMessage != "capacity exceeded" {
		t.Fatalf("expected embedded error surfaced, got %+v", snap)
	}
}

func TestJobStatusNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	if _, err := client.JobStatus(context.Background(), ports.Credential{BaseURL: server.URL, APIKey: "k"}, "j"); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestFileContentURL(t *testing.T) {
	client := NewClient()
	cred := ports.Credential{BaseURL: "https://api.openai.com/v1/"}
	if got := client.FileContentURL(cred, "file-9"); got != "https://api.openai.com/v1/videos/file-9/content" {
		t.Fatalf("unexpected url %q", got)
	}
}
