package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Generation strategies
const (
	ModeAuto    = "auto"
	ModeLocal   = "local"
	ModeRemote  = "remote"
	ModeForward = "forward"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration.
// The service is stateless: no database, and auth is delegated to an upstream gateway.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Generation strategy
	// - "auto": forward if API_BASE_URL is set, remote if the provider has a key, else local
	// - "local": offline synthesis only
	// - "remote": call the LLM provider
	// - "forward": proxy every call to API_BASE_URL
	GenerationMode    string
	FallbackToOffline bool   // Serve offline results when the remote or forward path fails
	PoolsFile         string // Optional YAML overlay for the offline pools

	// LLM
	// When LLM_PROVIDER is unset, LLMProvider is empty and the provider follows the model name
	LLMProvider   string
	OpenAIAPIKey  string // OpenAI API key for GPT models
	GeminiAPIKey  string // Google Gemini API key (GEMINI_API_KEY, or API_KEY)
	Model         string
	Temperature   float64
	ReasoningMode string // minimal, low, medium or high; only reasoning models use it

	// Forwarding
	APIBaseURL           string
	ForwardTimeout       time.Duration
	ForwardRatePerSecond float64

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse

	// HTTP surface
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:          getEnv("ENVIRONMENT", "development"),
		Port:                 getEnv("PORT", "8080"),
		GenerationMode:       strings.ToLower(getEnv("GENERATION_MODE", ModeAuto)),
		FallbackToOffline:    getEnvBool("FALLBACK_TO_OFFLINE", true),
		PoolsFile:            getEnv("POOLS_FILE", ""),
		LLMProvider:          strings.ToLower(getEnv("LLM_PROVIDER", "")),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		Model:                getEnv("LLM_MODEL", ""),
		Temperature:          getEnvFloat("LLM_TEMPERATURE", 0.9),
		ReasoningMode:        strings.ToLower(getEnv("LLM_REASONING_MODE", "low")),
		APIBaseURL:           strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
		ForwardTimeout:       getEnvDuration("FORWARD_TIMEOUT", 30*time.Second),
		ForwardRatePerSecond: getEnvFloat("FORWARD_RATE_PER_SECOND", 10),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:    getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:    getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:         getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:      getEnv("LANGFUSE_ENABLED", "false") == "true",
		AllowedOrigins:       getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerSecond:   getEnvFloat("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:       getEnvInt("RATE_LIMIT_BURST", 40),
		AuthMode:             getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// Malformed numeric values fall back to the default
func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

// IsGatewayMode returns true if running behind an authenticating gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Provider returns LLM_PROVIDER, or the provider implied by LLM_MODEL when it is unset.
// GPT and o-series models run on OpenAI; everything else on Gemini.
func (c *Config) Provider() string {
	if c.LLMProvider != "" {
		return c.LLMProvider
	}
	model := strings.ToLower(c.Model)
	isOSeries := len(model) > 1 && model[0] == 'o' && model[1] >= '0' && model[1] <= '9'
	if strings.HasPrefix(model, "gpt-") || isOSeries {
		return ProviderOpenAI
	}
	return ProviderGemini
}

// ProviderAPIKey returns the key for the configured LLM provider
func (c *Config) ProviderAPIKey() string {
	if c.Provider() == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// ModelName returns the configured model, or the provider's default
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider() == ProviderOpenAI {
		return "gpt-4.1-mini"
	}
	return "gemini-2.5-flash"
}

// ResolveMode picks the generation strategy once. An explicit mode wins; in auto mode
// a base URL selects forwarding, a provider key selects remote, and otherwise local.
func (c *Config) ResolveMode() string {
	switch c.GenerationMode {
	case ModeLocal, ModeRemote, ModeForward:
		return c.GenerationMode
	}
	if c.APIBaseURL != "" {
		return ModeForward
	}
	if c.ProviderAPIKey() != "" {
		return ModeRemote
	}
	return ModeLocal
}
