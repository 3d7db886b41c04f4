package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that the credentials required at startup are present
// and plausibly shaped. Entry points decide whether a failure is fatal.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return ValidationError{Field: "OPENAI_API_KEY", Message: "environment variable is required"}
	}
	if !strings.HasPrefix(c.OpenAIAPIKey, "sk-") {
		return ValidationError{Field: "OPENAI_API_KEY", Message: "appears to be invalid (expected sk- prefix)"}
	}
	if c.LogMealAPIKey == "" {
		return ValidationError{Field: "LOGMEAL_API_KEY", Message: "environment variable is required"}
	}
	return nil
}
