package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	httpAdapter "github.com/unimarket/catalog-service/internal/adapter/http"
	natsAdapter "github.com/unimarket/catalog-service/internal/adapter/messaging/nats"
	cacheAdapter "github.com/unimarket/catalog-service/internal/adapter/repository/cache"
	"github.com/unimarket/catalog-service/internal/adapter/repository/memory"
	mongoRepo "github.com/unimarket/catalog-service/internal/adapter/repository/mongodb"
	s3Adapter "github.com/unimarket/catalog-service/internal/adapter/storage/s3"
	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/catalog/usecase"
	"github.com/unimarket/catalog-service/internal/config"
	"github.com/unimarket/catalog-service/internal/mailer"
	"github.com/unimarket/catalog-service/internal/platform/logger"
	"github.com/unimarket/catalog-service/internal/platform/metrics"
	"github.com/unimarket/catalog-service/internal/platform/tracer"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application starting")

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort))

	// Tracing (no-op provider when the endpoint is unset).
	var tp *sdktrace.TracerProvider
	if cfg.OTExporterOTLPEndpoint != "" {
		tp = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	// Repository: Mongo when configured, otherwise the in-memory store.
	var repo domain.ListingRepository
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}()
		ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelPing()
		if err := mongoClient.Ping(ctxPing, nil); err != nil {
			appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
		}
		repo = mongoRepo.NewListingRepository(mongoClient.Database(cfg.MongoDatabase), appLogger)
		appLogger.Info("Using MongoDB listing repository", zap.String("database", cfg.MongoDatabase))
	} else {
		repo = memory.NewListingRepository()
		appLogger.Info("Using in-memory listing repository")
	}

	// Optional Redis read-through cache.
	var listingCache usecase.ListingCache
	if cfg.RedisAddress != "" {
		redisCache, err := cacheAdapter.NewListingCache(cfg.RedisAddress, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		listingCache = redisCache
	}

	// Event publisher: NATS when configured, otherwise a no-op.
	var events usecase.EventPublisher = usecase.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		defer natsPublisher.Close()
		events = natsPublisher
	}

	metricsManager := metrics.NewMetricsManager("catalog_service")

	// Verification notifications go to an ops mailbox when SMTP is set up.
	var notifier usecase.VerificationNotifier
	if cfg.SMTPHost != "" && cfg.VerifyNotifyEmail != "" {
		m := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
		notifier = mailer.NewNotifier(m, cfg.VerifyNotifyEmail)
		appLogger.Info("Verification email notifications enabled", zap.String("recipient", cfg.VerifyNotifyEmail))
	}

	verifierCtx, cancelVerifier := context.WithCancel(context.Background())
	defer cancelVerifier()
	verifier := usecase.NewVerifier(repo, listingCache, events, notifier, metricsManager, appLogger, cfg.VerificationDelay, nil)
	verifier.Start(verifierCtx)

	catalogUC := usecase.NewCatalogUsecase(repo, listingCache, events, verifier, metricsManager, appLogger)

	var photoUC *usecase.PhotoUsecase
	if cfg.MinIOEndpoint != "" {
		storage, err := s3Adapter.NewS3Storage(
			cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey,
			cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		photoUC = usecase.NewPhotoUsecase(storage, repo, listingCache, appLogger)
	}

	handler := httpAdapter.NewCatalogHandler(catalogUC, photoUC, appLogger)
	router := httpAdapter.NewRouter(handler, cfg.JWTSecret, metricsManager, appLogger)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}

	verifier.Stop()
	appLogger.Info("Application shut down")
}
