package ollama

import (
	"os"
	"strconv"
	"time"
)

// Config carries the externally supplied settings for one bridge instance.
// The preprocessing and decision paths run separate instances with their
// own timeouts and memory windows.
type Config struct {
	URL                 string
	Model               string
	Temperature         float64
	Timeout             time.Duration
	Enabled             bool
	Workers             int
	ConfidenceThreshold float64
	MemoryTurns         int
}

// NewConfigFromEnv loads the decision-path configuration (OLLAMA_*).
func NewConfigFromEnv() Config {
	return Config{
		URL:                 envString("OLLAMA_URL", "http://localhost:11434"),
		Model:               envString("OLLAMA_MODEL", "llama3.2:latest"),
		Temperature:         envFloat("OLLAMA_TEMPERATURE", 0.3),
		Timeout:             envSeconds("OLLAMA_TIMEOUT", 45),
		Enabled:             envBool("OLLAMA_ENABLED", true),
		Workers:             envInt("OLLAMA_WORKERS", 3),
		ConfidenceThreshold: envFloat("OLLAMA_CONFIDENCE_THRESHOLD", 0.7),
		MemoryTurns:         envInt("OLLAMA_MEMORY_TURNS", 10),
	}
}

// NewPreprocessConfigFromEnv loads the preprocessing-path configuration.
// It inherits OLLAMA_* connection settings with a shorter deadline and a
// smaller memory window.
func NewPreprocessConfigFromEnv() Config {
	config := NewConfigFromEnv()
	config.Temperature = envFloat("PREPROCESS_TEMPERATURE", 0.1)
	config.Timeout = envSeconds("PREPROCESS_TIMEOUT", 10)
	config.MemoryTurns = envInt("PREPROCESS_MEMORY_TURNS", 5)
	return config
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	return raw == "true" || raw == "1"
}

func envSeconds(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Second
}
