package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load consults so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY", EnvSiteURL, EnvSiteName} {
		t.Setenv(name, "")
	}
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("expected default provider %q, got %q", ProviderOpenRouter, cfg.Provider)
	}
	if cfg.Model != "perplexity/sonar" {
		t.Errorf("expected default model perplexity/sonar, got %q", cfg.Model)
	}
	if cfg.Quality != QualityNormal {
		t.Errorf("expected default quality %q, got %q", QualityNormal, cfg.Quality)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("expected default timeout 60s, got %s", cfg.Timeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.routerchat.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o"
	original.Quality = QualityMax
	original.SiteURL = "https://example.com"
	original.SiteName = "Example"
	original.Headers = map[string]string{"X-Trace": "enabled"}
	original.Timeout = 90 * time.Second
	original.MaxTokens = 512
	original.Temperature = 0.7
	original.Server.Port = 9090
	original.APIKey = "secret"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret") {
		t.Error("API key must not be written to the config file")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.Quality != original.Quality {
		t.Errorf("quality: got %q, want %q", loaded.Quality, original.Quality)
	}
	if loaded.SiteURL != original.SiteURL || loaded.SiteName != original.SiteName {
		t.Errorf("site: got %q/%q", loaded.SiteURL, loaded.SiteName)
	}
	if loaded.Headers["X-Trace"] != "enabled" {
		t.Errorf("headers: got %v", loaded.Headers)
	}
	if loaded.Timeout != original.Timeout {
		t.Errorf("timeout: got %s, want %s", loaded.Timeout, original.Timeout)
	}
	if loaded.MaxTokens != original.MaxTokens {
		t.Errorf("max_tokens: got %d, want %d", loaded.MaxTokens, original.MaxTokens)
	}
	if loaded.Temperature != original.Temperature {
		t.Errorf("temperature: got %f, want %f", loaded.Temperature, original.Temperature)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.APIKey != "" {
		t.Errorf("api key should be empty, got %q", loaded.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ROUTERCHAT_MODEL", "perplexity/sonar-pro")
	t.Setenv("ROUTERCHAT_MAX_TOKENS", "256")
	t.Setenv("ROUTERCHAT_TIMEOUT", "15s")
	t.Setenv("ROUTERCHAT_SERVER__PORT", "7070")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Model != "perplexity/sonar-pro" {
		t.Errorf("model override failed: got %q", loaded.Model)
	}
	if loaded.MaxTokens != 256 {
		t.Errorf("max_tokens override failed: got %d", loaded.MaxTokens)
	}
	if loaded.Timeout != 15*time.Second {
		t.Errorf("timeout override failed: got %s", loaded.Timeout)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("server.port override failed: got %d", loaded.Server.Port)
	}
}

func TestLoadModelsFollowProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROUTERCHAT_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "k")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Model)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("embedding_model = %q, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.APIKey != "k" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
}

func TestLoadModelsFollowQualityFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cfg.yml")
	content := "provider: openai\nquality: lite\nembedding_model: custom-embed\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.EmbeddingModel != "custom-embed" {
		t.Errorf("explicit embedding_model overridden: %q", cfg.EmbeddingModel)
	}
}

func TestLoadAPIKeyFromConventionalEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv(EnvSiteURL, "https://example.com")
	t.Setenv(EnvSiteName, "Example")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "or-key" {
		t.Errorf("api key: got %q, want or-key", cfg.APIKey)
	}
	if cfg.SiteURL != "https://example.com" || cfg.SiteName != "Example" {
		t.Errorf("site: got %q/%q", cfg.SiteURL, cfg.SiteName)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("RequireAPIKey: %v", err)
	}
}

func TestLoadPrefixedAPIKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("ROUTERCHAT_API_KEY", "prefixed-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "prefixed-key" {
		t.Errorf("api key: got %q, want prefixed-key", cfg.APIKey)
	}
}

func TestRequireAPIKeyMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.RequireAPIKey()
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Errorf("error should name the env var, got %q", err)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid provider", func(c *Config) { c.Provider = "invalid" }},
		{"empty provider", func(c *Config) { c.Provider = "" }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"invalid quality", func(c *Config) { c.Quality = "ultra" }},
		{"bad base url", func(c *Config) { c.BaseURL = "openrouter.ai" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative max tokens", func(c *Config) { c.MaxTokens = -1 }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative rate limit", func(c *Config) { c.Server.RateLimitRPM = -1 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset(ProviderOpenRouter, QualityMax)
	if p.Model != "perplexity/sonar-pro" {
		t.Errorf("expected sonar-pro, got %q", p.Model)
	}

	p = GetPreset(ProviderOpenAI, QualityLite)
	if p.Model != "gpt-4o-mini" {
		t.Errorf("expected gpt-4o-mini, got %q", p.Model)
	}

	p = GetPreset(ProviderOpenAI, "")
	if p.Model != "gpt-4o" {
		t.Errorf("expected normal tier for empty quality, got %q", p.Model)
	}

	// Unknown combination falls back.
	p = GetPreset("unknown", QualityLite)
	if p.Model != "perplexity/sonar" {
		t.Errorf("expected fallback to sonar, got %q", p.Model)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{"other", ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"ROUTERCHAT_MODEL":                  "model",
		"ROUTERCHAT_MAX_TOKENS":             "max_tokens",
		"ROUTERCHAT_SERVER__PORT":           "server.port",
		"ROUTERCHAT_SERVER__ALLOW_ALL":      "server.allow_all",
		"ROUTERCHAT_SERVER__RATE_LIMIT_RPM": "server.rate_limit_rpm",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"X-Title=Demo", []string{"X-Title=Demo"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

func TestParseHeaders(t *testing.T) {
	h, err := ParseHeaders("X-Title = Demo, HTTP-Referer=https://example.com/a=b")
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	if h["X-Title"] != "Demo" {
		t.Errorf("X-Title = %q", h["X-Title"])
	}
	if h["HTTP-Referer"] != "https://example.com/a=b" {
		t.Errorf("HTTP-Referer = %q", h["HTTP-Referer"])
	}

	if h, err := ParseHeaders("  "); err != nil || h != nil {
		t.Errorf("blank input: got %v, %v", h, err)
	}
	if _, err := ParseHeaders("novalue"); err == nil {
		t.Error("expected error for header without '='")
	}
	if _, err := ParseHeaders("=value"); err == nil {
		t.Error("expected error for empty header name")
	}
}
