package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides of config keys. A double
// underscore separates nested keys: ROUTERCHAT_SERVER__PORT -> server.port.
const EnvPrefix = "ROUTERCHAT_"

// Conventional variables read when the corresponding field is still empty
// after file and ROUTERCHAT_* overrides.
const (
	EnvSiteURL  = "YOUR_SITE_URL"
	EnvSiteName = "YOUR_SITE_NAME"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ROUTERCHAT_*), then fills the API key and
// site metadata from their conventional variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Model defaults belong to the provider and tier actually selected.
	preset := GetPreset(cfg.Provider, cfg.Quality)
	if !k.Exists("model") || cfg.Model == "" {
		cfg.Model = preset.Model
	}
	if !k.Exists("embedding_model") || cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = preset.EmbeddingModel
	}

	cfg.applyEnvFallbacks()
	return cfg, nil
}

// envKey maps ROUTERCHAT_MAX_TOKENS -> max_tokens and
// ROUTERCHAT_SERVER__PORT -> server.port.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) applyEnvFallbacks() {
	if c.APIKey == "" {
		if name := APIKeyEnvVar(c.Provider); name != "" {
			c.APIKey = os.Getenv(name)
		}
	}
	if c.SiteURL == "" {
		c.SiteURL = os.Getenv(EnvSiteURL)
	}
	if c.SiteName == "" {
		c.SiteName = os.Getenv(EnvSiteName)
	}
}

// Save writes the configuration to the given YAML file path. The API key is
// never written.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenRouter: true,
	ProviderOpenAI:     true,
}

// validQualityTiers is the set of recognized quality tier values.
var validQualityTiers = map[QualityTier]bool{
	QualityLite:   true,
	QualityNormal: true,
	QualityMax:    true,
}

// Validate checks that the configuration contains valid values. It does not
// require an API key; see RequireAPIKey.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openrouter, openai", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.Quality != "" && !validQualityTiers[c.Quality] {
		return fmt.Errorf("invalid quality %q: must be one of lite, normal, max", c.Quality)
	}

	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("invalid base_url %q: must be an http(s) URL", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	if c.Server.RateLimitRPM < 0 {
		return fmt.Errorf("server.rate_limit_rpm must be non-negative")
	}

	return nil
}

// RequireAPIKey returns an error naming where the key is expected when no
// API key has been configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey != "" {
		return nil
	}
	name := APIKeyEnvVar(c.Provider)
	if name == "" {
		name = EnvPrefix + "API_KEY"
	}
	return fmt.Errorf("%s environment variable is not set", name)
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
