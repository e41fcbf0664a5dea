package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ProviderEntry struct {
	Name      string   `yaml:"name"`
	BaseURL   string   `yaml:"base_url"`
	APIKeyEnv string   `yaml:"api_key_env"`
	APIKey    string   `yaml:"api_key"`
	Models    []string `yaml:"models"`
}

type Config struct {
	ServiceID string
	HTTPPort  int

	JWTPublicKey string

	RedisURL    string
	DatabaseURL string
	MaxDBConns  int

	AllowedHosts                 []string
	ResponseHeaderTimeoutSeconds int

	GrantRetentionHours  int
	ProgressTTLHours     int
	SweepIntervalMinutes int

	Providers       []ProviderEntry
	DefaultProvider string
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Auth struct {
		JWTPublicKey string `yaml:"jwt_public_key"`
	} `yaml:"auth"`
	Stores struct {
		RedisURL    string `yaml:"redis_url"`
		DatabaseURL string `yaml:"database_url"`
		MaxDBConns  int    `yaml:"max_db_conns"`
	} `yaml:"stores"`
	Streaming struct {
		AllowedHosts                 []string `yaml:"allowed_hosts"`
		ResponseHeaderTimeoutSeconds int      `yaml:"response_header_timeout_seconds"`
	} `yaml:"streaming"`
	Playback struct {
		GrantRetentionHours  int `yaml:"grant_retention_hours"`
		ProgressTTLHours     int `yaml:"progress_ttl_hours"`
		SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
	} `yaml:"playback"`
	Providers       []ProviderEntry `yaml:"providers"`
	DefaultProvider string          `yaml:"default_provider"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                    "M26-Video-Generation-Gateway",
		HTTPPort:                     8080,
		AllowedHosts:                 []string{"api.openai.com", "videos.openai.com"},
		ResponseHeaderTimeoutSeconds: 30,
		GrantRetentionHours:          24,
		ProgressTTLHours:             720,
		SweepIntervalMinutes:         15,
		DefaultProvider:              "openai",
		Providers: []ProviderEntry{
			{Name: "openai", BaseURL: "https://api.openai.com/v1", APIKeyEnv: "OPENAI_API_KEY", Models: []string{"sora"}},
		},
	}
	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Auth.JWTPublicKey != "" {
			cfg.JWTPublicKey = f.Auth.JWTPublicKey
		}
		if f.Stores.RedisURL != "" {
			cfg.RedisURL = f.Stores.RedisURL
		}
		if f.Stores.DatabaseURL != "" {
			cfg.DatabaseURL = f.Stores.DatabaseURL
		}
		if f.Stores.MaxDBConns > 0 {
			cfg.MaxDBConns = f.Stores.MaxDBConns
		}
		if len(f.Streaming.AllowedHosts) > 0 {
			cfg.AllowedHosts = f.Streaming.AllowedHosts
		}
		if f.Streaming.ResponseHeaderTimeoutSeconds > 0 {
			cfg.ResponseHeaderTimeoutSeconds = f.Streaming.ResponseHeaderTimeoutSeconds
		}
		if f.Playback.GrantRetentionHours > 0 {
			cfg.GrantRetentionHours = f.Playback.GrantRetentionHours
		}
		if f.Playback.ProgressTTLHours > 0 {
			cfg.ProgressTTLHours = f.Playback.ProgressTTLHours
		}
		if f.Playback.SweepIntervalMinutes > 0 {
			cfg.SweepIntervalMinutes = f.Playback.SweepIntervalMinutes
		}
		if len(f.Providers) > 0 {
			cfg.Providers = f.Providers
		}
		if f.DefaultProvider != "" {
			cfg.DefaultProvider = f.DefaultProvider
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.JWTPublicKey = envOrDefault("JWT_PUBLIC_KEY", cfg.JWTPublicKey)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.MaxDBConns = envInt("MAX_DB_CONNS", cfg.MaxDBConns)
	cfg.GrantRetentionHours = envInt("GRANT_RETENTION_HOURS", cfg.GrantRetentionHours)
	cfg.ProgressTTLHours = envInt("PROGRESS_TTL_HOURS", cfg.ProgressTTLHours)
	cfg.SweepIntervalMinutes = envInt("SWEEP_INTERVAL_MINUTES", cfg.SweepIntervalMinutes)
	cfg.DefaultProvider = envOrDefault("DEFAULT_PROVIDER", cfg.DefaultProvider)
	if hosts := os.Getenv("ALLOWED_HOSTS"); hosts != "" {
		cfg.AllowedHosts = splitAndTrim(hosts)
	}
	return cfg, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (c Config) GrantRetention() time.Duration {
	return time.Duration(c.GrantRetentionHours) * time.Hour
}

func (c Config) ProgressTTL() time.Duration {
	return time.Duration(c.ProgressTTLHours) * time.Hour
}

func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

func (c Config) ResponseHeaderTimeout() time.Duration {
	return time.Duration(c.ResponseHeaderTimeoutSeconds) * time.Second
}
