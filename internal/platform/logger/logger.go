package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so the rest of the service depends on one local type.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

// NewLogger builds a logger from LOG_LEVEL / LOG_FORMAT / LOG_OUTPUT.
// Misconfiguration degrades to sane defaults instead of failing startup.
func NewLogger() *Logger {
	cfg := DefaultConfig()

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := zapConfig.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
		fmt.Fprintf(os.Stderr, "logger: invalid LOG_LEVEL %q, defaulting to info: %v\n", cfg.Level, err)
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "text":
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapConfig.Encoding = "json"
	}

	if cfg.OutputFile != "stdout" && cfg.OutputFile != "stderr" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create log directory for %q, using stdout: %v\n", cfg.OutputFile, err)
			zapConfig.OutputPaths = []string{"stdout"}
		} else {
			zapConfig.OutputPaths = []string{cfg.OutputFile, "stdout"}
			zapConfig.ErrorOutputPaths = []string{cfg.OutputFile, "stderr"}
		}
	} else {
		zapConfig.OutputPaths = []string{cfg.OutputFile}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	zl, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to basic production logger: %v\n", err)
		zl, _ = zap.NewProduction()
	}
	return &Logger{Logger: zl, config: cfg}
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: DefaultConfig()}
}

// Named adds a path segment to the logger's name for per-component context.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With attaches structured fields to every entry logged through the result.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
