// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration. Values resolve as
// defaults, then the optional TOML file, then environment variables.
type Config struct {
	// Completion service settings
	LLM LLMConfig `toml:"llm"`

	// Batch settings
	Workers int `toml:"workers"` // 0 means use runtime.NumCPU()

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// LLMConfig holds the completion-service connection parameters.
type LLMConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxTokens      int    `toml:"max_tokens"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama3-8b-8192",
			TimeoutSeconds: 30,
			MaxTokens:      256,
		},
		Workers:   0,
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load builds the configuration. path may be empty; when set it must
// name a TOML file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.LLM.APIKey = getEnv("TABLEWASH_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("TABLEWASH_LLM_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("TABLEWASH_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.TimeoutSeconds = getEnvAsInt("TABLEWASH_LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)
	cfg.LLM.MaxTokens = getEnvAsInt("TABLEWASH_LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.Workers = getEnvAsInt("TABLEWASH_WORKERS", cfg.Workers)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.LLM.BaseURL == "" {
		return errors.New("llm base URL cannot be empty")
	}
	if c.LLM.Model == "" {
		return errors.New("llm model cannot be empty")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm timeout must be positive")
	}
	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	return nil
}

// Enabled reports whether a completion service is configured. Without
// an API key the engine runs in restricted mode.
func (l LLMConfig) Enabled() bool {
	return l.APIKey != ""
}

// Timeout returns the request timeout as a duration.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
