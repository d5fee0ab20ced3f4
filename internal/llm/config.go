package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures one completion provider.
type Config struct {
	// Provider is one of "openai", "anthropic", "gemini", "mock".
	Provider string `yaml:"provider"`

	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the endpoint, e.g. for OpenAI-compatible APIs.
	BaseURL string `yaml:"base_url"`

	Timeout     string  `yaml:"timeout"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Timeout:     "30s",
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// TimeoutDuration parses Timeout, falling back to 30s.
func (c Config) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// ApplyEnv fills unset values from the environment.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("QUIZ_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}
	if c.APIKey != "" {
		return
	}
	switch c.Provider {
	case "openai":
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
