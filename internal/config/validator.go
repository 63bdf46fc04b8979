package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "ai.temperature")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAI()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateAI() []ValidationError {
	var errors []ValidationError

	if !strings.HasPrefix(c.AI.BaseURL, "http://") && !strings.HasPrefix(c.AI.BaseURL, "https://") {
		errors = append(errors, ValidationError{
			Field:   "ai.base_url",
			Value:   c.AI.BaseURL,
			Message: "must be an http(s) URL",
		})
	}

	if c.AI.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "ai.model",
			Value:   c.AI.Model,
			Message: "must not be empty",
		})
	}

	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "ai.temperature",
			Value:   c.AI.Temperature,
			Message: "must be between 0 and 2",
		})
	}

	if c.AI.MaxTokens < 0 {
		errors = append(errors, ValidationError{
			Field:   "ai.max_tokens",
			Value:   c.AI.MaxTokens,
			Message: "must be >= 0 (0 = provider default)",
		})
	}

	if c.AI.APIKeyEnv == "" {
		errors = append(errors, ValidationError{
			Field:   "ai.api_key_env",
			Value:   c.AI.APIKeyEnv,
			Message: "must name the environment variable holding the API key",
		})
	}

	if c.AI.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ai.timeout_seconds",
			Value:   c.AI.TimeoutSeconds,
			Message: "must be > 0",
		})
	}

	return errors
}

func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if c.Paths.DataDir == "" {
		errors = append(errors, ValidationError{
			Field:   "paths.data_dir",
			Value:   c.Paths.DataDir,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "must not be empty",
		})
	}

	if len(c.Server.AllowedOrigins) == 0 {
		errors = append(errors, ValidationError{
			Field:   "server.allowed_origins",
			Value:   c.Server.AllowedOrigins,
			Message: "must list at least one origin (use \"*\" to allow all)",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
