package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Env holds process settings read from the environment
type Env struct {
	LogLevel      string
	Locale        string
	DefaultFormat string
}

// LoadEnv reads an optional .env file, then the CAIXINHA_* variables.
// Variables already set in the environment win over the file.
func LoadEnv(files ...string) Env {
	_ = godotenv.Load(files...)

	return Env{
		LogLevel:      getEnv("CAIXINHA_LOG_LEVEL", "info"),
		Locale:        getEnv("CAIXINHA_LOCALE", "pt-BR"),
		DefaultFormat: getEnv("CAIXINHA_FORMAT", "console"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
