package config

import "time"

// Supported language model providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Supported log output formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Default model per provider, used when llm.model is not set.
var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5",
}

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Jobs   JobsConfig   `mapstructure:"jobs"   validate:"required"`
	Prompt PromptConfig `mapstructure:"prompt"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format"       validate:"required,oneof=json text"`
	Environment     string        `mapstructure:"environment"      validate:"required,oneof=development staging production"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider        string `mapstructure:"provider"          validate:"required,oneof=gemini openai anthropic"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"    validate:"required_if=Provider gemini"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"    validate:"required_if=Provider openai"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key" validate:"required_if=Provider anthropic"`
	Model           string `mapstructure:"model"`
	BaseURL         string `mapstructure:"base_url"          validate:"omitempty,url"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens" validate:"gte=0"`

	// RequestsPerSecond throttles outbound model calls. Zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst"               validate:"gte=0"`
}

// ModelName returns the configured model, falling back to the provider default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// APIKey returns the API key of the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// JobsConfig controls the background job orchestrator.
type JobsConfig struct {
	// MaxAttempts is the retry budget per job, including the first attempt.
	MaxAttempts int `mapstructure:"max_attempts" validate:"gte=1,lte=10"`

	// BaseBackoff is the wait after the first transient failure; it doubles
	// on every subsequent failure.
	BaseBackoff time.Duration `mapstructure:"base_backoff" validate:"gt=0"`

	// AttemptTimeout bounds a single call to the model.
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" validate:"gt=0"`

	// Expiry is how long a job stays visible after submission.
	Expiry time.Duration `mapstructure:"expiry" validate:"gt=0"`

	// SweepInterval is how often expired jobs are evicted.
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`

	// MaxConcurrent caps how many jobs call the model at the same time.
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"gte=1"`
}

// PromptConfig contains prompt composer settings.
type PromptConfig struct {
	// TemplatesPath optionally points to a YAML file overriding the built-in
	// domain templates.
	TemplatesPath string `mapstructure:"templates_path"`
}
