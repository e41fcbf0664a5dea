package application

import (
	"log/slog"
	"time"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

type Config struct {
	ServiceName    string
	GrantRetention time.Duration
	ProgressTTL    time.Duration
	AllowedHosts   []string
}

// Actor is the authenticated caller. ViewerID is derived from the
// session: email when present, else the user id, else "anonymous".
type Actor struct {
	ViewerID  string
	RequestID string
}

// StreamSource is an authorized upstream location handed to the HTTP
// layer for proxying. SourceURL must never appear in any response.
type StreamSource struct {
	JobID     string
	SourceURL string
	FileName  string
}

type Service struct {
	cfg       Config
	logger    *slog.Logger
	allowlist domain.HostAllowlist

	grants      ports.PlaybackGrantStore
	progress    ports.WatchProgressStore
	credentials ports.CredentialResolver
	generator   ports.GenerationClient

	nowFn func() time.Time
}

type Dependencies struct {
	Config Config
	Logger *slog.Logger

	Grants      ports.PlaybackGrantStore
	Progress    ports.WatchProgressStore
	Credentials ports.CredentialResolver
	Generator   ports.GenerationClient
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "M26-Video-Generation-Gateway"
	}
	if cfg.GrantRetention <= 0 {
		cfg.GrantRetention = 24 * time.Hour
	}
	if cfg.ProgressTTL <= 0 {
		cfg.ProgressTTL = 30 * 24 * time.Hour
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:         cfg,
		logger:      logger,
		allowlist:   domain.NewHostAllowlist(cfg.AllowedHosts),
		grants:      deps.Grants,
		progress:    deps.Progress,
		credentials: deps.Credentials,
		generator:   deps.Generator,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}
