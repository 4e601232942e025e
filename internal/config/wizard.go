package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to routerchat! Let's configure your client.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select API provider",
		Items: []string{"openrouter", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   — fast & cheap (sonar / gpt-4o-mini)",
			"normal — balanced (sonar / gpt-4o)",
			"max    — highest quality (sonar-pro / gpt-4o)",
		},
		CursorPos: 1,
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	quality := tiers[qualityIdx]

	preset := GetPreset(provider, quality)

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Quality = quality
	cfg.Model = preset.Model
	cfg.EmbeddingModel = preset.EmbeddingModel

	// 3. Ranking metadata, OpenRouter only.
	if provider == ProviderOpenRouter {
		siteURLPrompt := promptui.Prompt{
			Label:   "Site URL for OpenRouter rankings (optional)",
			Default: os.Getenv(EnvSiteURL),
		}
		if cfg.SiteURL, err = siteURLPrompt.Run(); err != nil {
			return nil, fmt.Errorf("site url: %w", err)
		}

		siteNamePrompt := promptui.Prompt{
			Label:   "Site name for OpenRouter rankings (optional)",
			Default: os.Getenv(EnvSiteName),
		}
		if cfg.SiteName, err = siteNamePrompt.Run(); err != nil {
			return nil, fmt.Errorf("site name: %w", err)
		}
	}

	// 4. Extra headers.
	headersPrompt := promptui.Prompt{
		Label:    "Extra request headers (comma-separated Name=Value, leave blank for none)",
		Validate: func(s string) error { _, err := ParseHeaders(s); return err },
	}
	headersStr, err := headersPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("extra headers: %w", err)
	}
	if cfg.Headers, err = ParseHeaders(headersStr); err != nil {
		return nil, err
	}

	// Check for API key.
	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running routerchat chat.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// ParseHeaders parses "Name=Value, Other=Value" into a header map. A blank
// string yields a nil map.
func ParseHeaders(s string) (map[string]string, error) {
	var headers map[string]string
	for _, pair := range splitAndTrim(s) {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected Name=Value", pair)
		}
		if headers == nil {
			headers = make(map[string]string)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty tokens.
func splitAndTrim(s string) []string {
	var result []string
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			result = append(result, token)
		}
	}
	return result
}
