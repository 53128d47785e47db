package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Groq   GroqConfig
	Ollama OllamaConfig
	Engine EngineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Port            string   `envconfig:"PORT" default:"8080"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// LLMConfig selects the generation backend
type LLMConfig struct {
	// Provider is "groq", "ollama", or empty. Empty falls back to groq
	// when an API key is configured, else the deterministic mock source.
	Provider string `envconfig:"LLM_PROVIDER" default:""`
}

// GroqConfig holds the cloud provider configuration
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY" default:""`
	BaseURL     string  `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	MaxTokens   int     `envconfig:"GROQ_MAX_TOKENS" default:"4096"`
	Temperature float32 `envconfig:"GROQ_TEMPERATURE" default:"0.1"`
}

// OllamaConfig holds the local provider configuration
type OllamaConfig struct {
	BaseURL     string        `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`
	Model       string        `envconfig:"OLLAMA_MODEL" default:"llama3.2"`
	Timeout     time.Duration `envconfig:"OLLAMA_TIMEOUT" default:"45s"`
	NumCtx      int           `envconfig:"OLLAMA_NUM_CTX" default:"8192"`
	Temperature float32       `envconfig:"OLLAMA_TEMPERATURE" default:"0.1"`
	TopP        float32       `envconfig:"OLLAMA_TOP_P" default:"0.9"`
	SkipRepair  bool          `envconfig:"OLLAMA_SKIP_REPAIR" default:"false"`
}

// EngineConfig holds grounding-engine policy flags
type EngineConfig struct {
	// AcceptResidualIssues keeps a result that still carries grounding
	// or completeness issues after the single repair attempt. When
	// false the engine fails closed with a validation error instead.
	AcceptResidualIssues bool `envconfig:"ACCEPT_RESIDUAL_ISSUES" default:"true"`
	// DebugGrounding logs residual issues left after repair
	DebugGrounding bool `envconfig:"DEBUG_GROUNDING" default:"false"`
	// EnableTestMode activates the fault-injection registry used by
	// integration tests. Must stay off in production.
	EnableTestMode bool `envconfig:"ENABLE_TEST_MODE" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "", "groq", "ollama":
	default:
		return fmt.Errorf("LLM_PROVIDER must be \"groq\", \"ollama\", or unset, got %q", c.LLM.Provider)
	}
	if c.LLM.Provider == "groq" && c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=groq")
	}
	if c.Engine.EnableTestMode && c.Server.Environment == "production" {
		return fmt.Errorf("ENABLE_TEST_MODE must not be enabled in production")
	}
	return nil
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
