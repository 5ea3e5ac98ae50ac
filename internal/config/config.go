package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings, loaded from the environment and an optional .env file.
type Config struct {
	// Translation providers
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	Provider    string // gemini, openai or anthropic
	Model       string // provider default when empty
	Concurrency int    // parallel translation requests
	BatchSize   int    // lines per translation request
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GeminiAPIKey:    envStr("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),

		Provider:    strings.ToLower(envStr("LYRICSYNC_PROVIDER", "gemini")),
		Model:       envStr("LYRICSYNC_MODEL", ""),
		Concurrency: envInt("LYRICSYNC_CONCURRENCY", 3),
		BatchSize:   envInt("LYRICSYNC_BATCH_SIZE", 50),
	}
}

// API key for provider, empty when unknown or unset
func (c Config) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return ""
	}
}

// environment variable holding the key for provider
func APIKeyEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
