package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete prioritizer configuration
type Config struct {
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Paths   PathsConfig   `mapstructure:"paths" yaml:"paths"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AIConfig controls the external completion service
type AIConfig struct {
	// BaseURL is the OpenAI-compatible chat completions endpoint.
	// Defaults to the Groq API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Model is the model identifier sent with every completion request
	Model string `mapstructure:"model" yaml:"model"`
	// Temperature is the sampling temperature; kept low so prioritizations
	// stay close to deterministic
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	// MaxTokens caps the completion length (0 = provider default)
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in the config file.
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
	// TimeoutSeconds is the HTTP client timeout for completion requests
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// PathsConfig controls where the prioritizer stores data
type PathsConfig struct {
	// DataDir is the directory for session snapshots and the latest pointer.
	// Supports ~ for home directory expansion; relative paths resolve
	// against the working directory.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// ServerConfig controls the HTTP API server
type ServerConfig struct {
	// Addr is the listen address for `prioritizer serve`
	Addr string `mapstructure:"addr" yaml:"addr"`
	// AllowedOrigins is the CORS allowlist; ["*"] permits any origin
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
}

// APIKey resolves the API key from the configured environment variable.
func (a *AIConfig) APIKey() string {
	return os.Getenv(a.APIKeyEnv)
}

// Timeout returns the completion request timeout as a time.Duration.
func (a *AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ResolveDataDir returns the resolved data directory path.
// If DataDir starts with ~, it expands to the user's home directory.
func (p *PathsConfig) ResolveDataDir() string {
	path := p.DataDir
	if path == "" {
		path = "data"
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		AI: AIConfig{
			BaseURL:        "https://api.groq.com/openai/v1/chat/completions",
			Model:          "llama-3.1-8b-instant",
			Temperature:    0.2,
			MaxTokens:      0,
			APIKeyEnv:      "GROQ_API_KEY",
			TimeoutSeconds: 60,
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"*"}, // Mirror the original backend; tighten in production
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("ai.base_url", defaults.AI.BaseURL)
	viper.SetDefault("ai.model", defaults.AI.Model)
	viper.SetDefault("ai.temperature", defaults.AI.Temperature)
	viper.SetDefault("ai.max_tokens", defaults.AI.MaxTokens)
	viper.SetDefault("ai.api_key_env", defaults.AI.APIKeyEnv)
	viper.SetDefault("ai.timeout_seconds", defaults.AI.TimeoutSeconds)

	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)

	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prioritizer")
	}
	// Fall back to ~/.config/prioritizer
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prioritizer"
	}
	return filepath.Join(home, ".config", "prioritizer")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
