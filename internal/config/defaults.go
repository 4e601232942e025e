package config

import "time"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".routerchat.yml"

// QualityPreset describes the models to use for a given quality tier.
type QualityPreset struct {
	Model          string
	EmbeddingModel string
}

// qualityPresets maps each provider+quality combination to its model choices.
var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderOpenRouter: {
		QualityLite:   {Model: "perplexity/sonar", EmbeddingModel: "google/gemini-embedding-001"},
		QualityNormal: {Model: "perplexity/sonar", EmbeddingModel: "google/gemini-embedding-001"},
		QualityMax:    {Model: "perplexity/sonar-pro", EmbeddingModel: "google/gemini-embedding-001"},
	},
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
		QualityNormal: {Model: "gpt-4o", EmbeddingModel: "text-embedding-3-small"},
		QualityMax:    {Model: "gpt-4o", EmbeddingModel: "text-embedding-3-large"},
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenRouter,
		Model:          "perplexity/sonar",
		Quality:        QualityNormal,
		Timeout:        60 * time.Second,
		EmbeddingModel: "google/gemini-embedding-001",
		Server: ServerConfig{
			Port:         8080,
			AllowAll:     false,
			RateLimitRPM: 60,
		},
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// An empty tier means normal. Returns the Normal OpenRouter preset if the
// combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tier == "" {
		tier = QualityNormal
	}
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderOpenRouter][QualityNormal]
}
