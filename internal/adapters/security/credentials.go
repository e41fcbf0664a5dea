package security

import (
	"context"
	"os"
	"strings"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

// ProviderConfig binds a set of model-name prefixes to one upstream
// provider. APIKeyEnv names the environment variable holding the key;
// APIKey is a static fallback for local runs.
type ProviderConfig struct {
	Name          string
	BaseURL       string
	APIKeyEnv     string
	APIKey        string
	ModelPrefixes []string
}

// CredentialResolver picks the provider for a model identifier and
// resolves its API key. Key decryption-at-rest lives with the platform
// credential service; this adapter only handles env/config sourcing.
type CredentialResolver struct {
	providers       []ProviderConfig
	defaultProvider string
}

func NewCredentialResolver(providers []ProviderConfig, defaultProvider string) *CredentialResolver {
	return &CredentialResolver{providers: providers, defaultProvider: defaultProvider}
}

func (r *CredentialResolver) Resolve(_ context.Context, model string) (ports.Credential, error) {
	provider := r.match(strings.ToLower(strings.TrimSpace(model)))
	if provider == nil {
		return ports.Credential{}, domain.ErrProviderNotConfigured
	}
	key := provider.APIKey
	if provider.APIKeyEnv != "" {
		if fromEnv := os.Getenv(provider.APIKeyEnv); fromEnv != "" {
			key = fromEnv
		}
	}
	if key == "" {
		return ports.Credential{}, domain.ErrProviderNotConfigured
	}
	return ports.Credential{Provider: provider.Name, BaseURL: provider.BaseURL, APIKey: key}, nil
}

func (r *CredentialResolver) match(model string) *ProviderConfig {
	if model != "" {
		for i := range r.providers {
			for _, prefix := range r.providers[i].ModelPrefixes {
				if strings.HasPrefix(model, strings.ToLower(prefix)) {
					return &r.providers[i]
				}
			}
		}
	}
	for i := range r.providers {
		if r.providers[i].Name == r.defaultProvider {
			return &r.providers[i]
		}
	}
	return nil
}
