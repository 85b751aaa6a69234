// Package translate provides a client for the external translation API.
package translate

import (
	"os"
	"time"
)

// DefaultTimeout caps a single translation request so a slow adapter
// never blocks the caller; on timeout the caller falls back to English.
const DefaultTimeout = 3 * time.Second

// Config holds configuration for the translation API client.
type Config struct {
	APIKey  string        // API key for authentication (optional for self-hosted instances)
	BaseURL string        // Base URL for the API (e.g., "https://translation.googleapis.com/language/translate/v2")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads translation API configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:  os.Getenv("TRANSLATE_API_KEY"),
		BaseURL: os.Getenv("TRANSLATE_BASE_URL"),
		Timeout: DefaultTimeout,
	}
}
