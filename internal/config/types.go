package config

import "time"

// QualityTier controls the model selection and trade-off between speed/cost and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOpenAI     ProviderType = "openai"
)

// Config is the top-level routerchat configuration, corresponding to .routerchat.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	Quality  QualityTier  `yaml:"quality" koanf:"quality"`
	BaseURL  string       `yaml:"base_url,omitempty" koanf:"base_url"`
	// APIKey is never written to disk; supply it through the environment.
	APIKey string `yaml:"-" koanf:"api_key"`

	// SiteURL and SiteName are sent as the HTTP-Referer and X-Title ranking headers.
	SiteURL  string            `yaml:"site_url,omitempty" koanf:"site_url"`
	SiteName string            `yaml:"site_name,omitempty" koanf:"site_name"`
	Headers  map[string]string `yaml:"headers,omitempty" koanf:"headers"`

	Timeout        time.Duration `yaml:"timeout" koanf:"timeout"`
	MaxTokens      int           `yaml:"max_tokens,omitempty" koanf:"max_tokens"`
	Temperature    float64       `yaml:"temperature,omitempty" koanf:"temperature"`
	EmbeddingModel string        `yaml:"embedding_model" koanf:"embedding_model"`
	Server         ServerConfig  `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Port         int  `yaml:"port" koanf:"port"`
	AllowAll     bool `yaml:"allow_all" koanf:"allow_all"`
	RateLimitRPM int  `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
}
