package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/adapters/cache"
	httpadapter "github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/adapters/http"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/adapters/maintenance"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/adapters/postgres"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/adapters/security"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/adapters/upstream"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/application"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	sweeper    *maintenance.Sweeper
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	verifier, err := buildVerifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	grants, progress, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	providers := make([]security.ProviderConfig, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		providers = append(providers, security.ProviderConfig{
			Name:          p.Name,
			BaseURL:       p.BaseURL,
			APIKeyEnv:     p.APIKeyEnv,
			APIKey:        p.APIKey,
			ModelPrefixes: p.Models,
		})
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:    cfg.ServiceID,
			GrantRetention: cfg.GrantRetention(),
			ProgressTTL:    cfg.ProgressTTL(),
			AllowedHosts:   cfg.AllowedHosts,
		},
		Logger:      logger,
		Grants:      grants,
		Progress:    progress,
		Credentials: security.NewCredentialResolver(providers, cfg.DefaultProvider),
		Generator:   upstream.NewClient(),
	})

	handler := httpadapter.NewHandler(service, upstream.NewFetcher(cfg.ResponseHeaderTimeout()), logger)
	router := httpadapter.NewRouter(handler, verifier, logger)
	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HTTPPort), Handler: router, ReadHeaderTimeout: 5 * time.Second}
	sweeper := maintenance.NewSweeper(logger, service, cfg.SweepInterval())

	return &Runtime{cfg: cfg, logger: logger, httpServer: httpServer, sweeper: sweeper}, nil
}

func buildVerifier(cfg Config, logger *slog.Logger) (ports.SessionVerifier, error) {
	if cfg.JWTPublicKey != "" {
		return security.NewJWTVerifier(cfg.JWTPublicKey)
	}
	// No session key configured: mint an in-memory keypair so local
	// runs start, and say so loudly.
	logger.Warn("no jwt public key configured, using ephemeral session keys")
	signer, err := security.NewEphemeralSigner()
	if err != nil {
		return nil, err
	}
	return signer.Verifier(), nil
}

func buildStores(ctx context.Context, cfg Config, logger *slog.Logger) (ports.PlaybackGrantStore, ports.WatchProgressStore, error) {
	var grants ports.PlaybackGrantStore = cacheadapter.NewMemoryGrantStore(cfg.GrantRetention())
	var progress ports.WatchProgressStore = cacheadapter.NewMemoryProgressStore(cfg.ProgressTTL())

	if cfg.RedisURL != "" {
		client, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		grants = cacheadapter.NewRedisGrantStore(client, cfg.GrantRetention())
		progress = cacheadapter.NewRedisProgressStore(client, cfg.ProgressTTL())
		logger.Info("using redis-backed stores")
	}
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.MaxDBConns))
		if err != nil {
			return nil, nil, err
		}
		repo, err := postgres.NewProgressRepository(db, cfg.ProgressTTL())
		if err != nil {
			return nil, nil, err
		}
		progress = repo
		logger.Info("using postgres-backed watch progress store")
	}
	if cfg.RedisURL == "" && cfg.DatabaseURL == "" {
		logger.Warn("using in-memory stores, state will not survive restarts or scale past one instance")
	}
	return grants, progress, nil
}

func (r *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go func() {
		if err := r.sweeper.Run(sweepCtx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.ErrorContext(sweepCtx, "sweeper stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	r.logger.InfoContext(ctx, "http server started", "addr", r.httpServer.Addr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	return nil
}
