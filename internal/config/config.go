package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultBackend     = "fasthttp"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 10
	DefaultTemperature = 0
	DefaultTimeout     = 30 * time.Second
	DefaultCacheTTL    = 24 * time.Hour
)

type AppConfig struct {
	// APIKey may be empty; callers treat that as "skip the remote call".
	APIKey  string
	BaseURL string
	Backend string

	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration

	PromptDir string

	CacheURL string
	CacheTTL time.Duration
}

// HasCredential reports whether an API key is configured.
func (c *AppConfig) HasCredential() bool {
	return c != nil && c.APIKey != ""
}

// LoadFrom reads the configuration through getenv. Malformed optional values
// keep their defaults; only an unusable base URL is reported.
func LoadFrom(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{
		BaseURL:     DefaultBaseURL,
		Backend:     DefaultBackend,
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
		CacheTTL:    DefaultCacheTTL,
	}

	cfg.APIKey = strings.TrimSpace(getenv("OPENAI_API_KEY"))

	if v := strings.TrimSpace(getenv("OPENAI_BASE_URL")); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(getenv("CHATGPT_MOVE_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("CHATGPT_MOVE_MODEL")); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(getenv("CHATGPT_MOVE_MAX_TOKENS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := strings.TrimSpace(getenv("CHATGPT_MOVE_TEMPERATURE")); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = float32(f)
		}
	}
	if v := strings.TrimSpace(getenv("CHATGPT_MOVE_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	cfg.PromptDir = strings.TrimSpace(getenv("CHATGPT_MOVE_PROMPT_DIR"))

	// Cache
	cfg.CacheURL = strings.TrimSpace(getenv("CHATGPT_MOVE_CACHE_URL"))
	if v := strings.TrimSpace(getenv("CHATGPT_MOVE_CACHE_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("OPENAI_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("OPENAI_BASE_URL: unsupported scheme %q", u.Scheme)
	}

	return cfg, nil
}
