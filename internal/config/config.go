package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values.
type Config struct {
	// Type catalog
	TypesFile string

	// Completion monitoring
	PollInterval time.Duration
	WaitTimeout  time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables, after sourcing
// a .env file from the working directory when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		// Type catalog
		TypesFile: getEnv("ARES_TYPES_FILE", "import_file_types.yaml"),

		// Completion monitoring
		PollInterval: getDurationEnv("ARES_POLL_INTERVAL", time.Second),
		WaitTimeout:  getDurationEnv("ARES_WAIT_TIMEOUT", 10*time.Minute),

		// Logging
		LogFile:  getEnv("ARES_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("ARES_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
