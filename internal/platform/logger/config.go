package logger

import "os"

// LoggerConfig is read straight from the environment so the logger can come
// up before the full application config is parsed.
type LoggerConfig struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "json" or "console"
	OutputFile string // "stdout", "stderr" or a file path
}

func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Format:     getEnv("LOG_FORMAT", "json"),
		OutputFile: getEnv("LOG_OUTPUT", "stdout"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
