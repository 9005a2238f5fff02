package config

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/platform/logger"
)

// Config holds all configuration for the catalog service. Infrastructure
// backends (Mongo, Redis, NATS, MinIO, SMTP, OTLP) are optional: an empty
// address means the corresponding adapter is not wired.
type Config struct {
	ServiceName           string `mapstructure:"SERVICE_NAME"`
	HTTPPort              string `mapstructure:"HTTP_PORT"`
	PrometheusMetricsPort string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogFormat             string `mapstructure:"LOG_FORMAT"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	NATSURL       string `mapstructure:"NATS_URL"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	SMTPHost          string `mapstructure:"SMTP_HOST"`
	SMTPPort          int    `mapstructure:"SMTP_PORT"`
	SMTPEmail         string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword      string `mapstructure:"SMTP_PASSWORD"`
	VerifyNotifyEmail string `mapstructure:"VERIFY_NOTIFY_EMAIL"`

	VerificationDelay time.Duration `mapstructure:"VERIFICATION_DELAY"`

	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig reads configuration from the environment, with defaults suitable
// for local development. A .env file, if any, is loaded by main before this
// runs.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	viper.SetDefault("SERVICE_NAME", "catalog-service")
	viper.SetDefault("HTTP_PORT", "8084")
	viper.SetDefault("PROMETHEUS_METRICS_PORT", "9094")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MONGO_URI", "")
	viper.SetDefault("MONGO_DATABASE", "unimarket_catalog")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("MINIO_ENDPOINT", "")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "listing-images")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_EMAIL", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("VERIFY_NOTIFY_EMAIL", "")
	viper.SetDefault("VERIFICATION_DELAY", "2s")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.JWTSecret == "" {
		appLogger.Warn("JWT_SECRET is empty; mutating HTTP routes will reject all requests until it is set")
	}
	if cfg.VerificationDelay <= 0 {
		appLogger.Warn("VERIFICATION_DELAY must be positive, using 2s",
			zap.Duration("configured", cfg.VerificationDelay))
		cfg.VerificationDelay = 2 * time.Second
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_enabled", cfg.MongoURI != ""),
		zap.Bool("redis_enabled", cfg.RedisAddress != ""),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("minio_enabled", cfg.MinIOEndpoint != ""),
	)
	return &cfg, nil
}
