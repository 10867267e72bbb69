package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellerboost-api/internal/cache"
	"sellerboost-api/internal/config"
	"sellerboost-api/internal/events"
	"sellerboost-api/internal/flyer"
	"sellerboost-api/internal/handler"
	"sellerboost-api/internal/identity"
	"sellerboost-api/internal/llm"
	"sellerboost-api/internal/middleware"
	"sellerboost-api/internal/objectstore"
	"sellerboost-api/internal/repository"
	"sellerboost-api/internal/router"
	"sellerboost-api/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/sethvargo/go-retry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := setupLogging(cfg.App.LogLevel); err != nil {
		return err
	}
	slog.Info("starting", "app", cfg.App.Name, "version", cfg.App.Version, "env", cfg.App.Environment)

	ctx := context.Background()

	// Durable store is required; retry while it comes up.
	store, err := openStore(ctx, &cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	checks := map[string]handler.Pinger{"store": store}

	// Identity, optionally cached in Redis
	var resolver identity.Resolver = identity.NewClerkResolver(cfg.Clerk.SecretKey, cfg.Clerk.KeyTTL)
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      cfg.Cache.RedisAddress(),
			Password:  cfg.Cache.RedisPassword,
			DB:        cfg.Cache.RedisDB,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			slog.Warn("redis unavailable, principal cache disabled", "error", err)
		} else {
			defer redisCache.Close()
			resolver = identity.NewCachedResolver(resolver, redisCache, cfg.Cache.PrincipalTTL)
			checks["cache"] = redisCache
			slog.Info("principal cache initialized", "addr", cfg.Cache.RedisAddress())
		}
	}

	llmClient := llm.NewClient(llm.Config{
		APIKey:       cfg.OpenAI.APIKey,
		BaseURL:      cfg.OpenAI.BaseURL,
		Timeout:      cfg.OpenAI.Timeout,
		ImageModel:   cfg.OpenAI.ImageModel,
		ImageSize:    cfg.OpenAI.ImageSize,
		ImageQuality: cfg.OpenAI.ImageQuality,
	})
	if !llmClient.Configured() {
		slog.Warn("OPENAI_API_KEY not set; generation requests will fail")
	}

	var awsCfg *aws.Config
	if cfg.Objects.Type == "s3" || cfg.Events.QueueURL != "" {
		c, err := loadAWSConfig(ctx, &cfg.AWS)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		awsCfg = &c
	}

	var objects objectstore.ObjectStore
	var filesDir string
	switch cfg.Objects.Type {
	case "s3":
		objects = objectstore.NewS3Store(*awsCfg, cfg.Objects.Bucket, cfg.Objects.Endpoint, cfg.Objects.PublicBaseURL)
		slog.Info("object store initialized", "type", "s3", "bucket", cfg.Objects.Bucket)
	default:
		publicURL := cfg.Objects.PublicBaseURL
		if publicURL == "" {
			publicURL = fmt.Sprintf("http://localhost:%d/files", cfg.Server.Port)
		}
		local := objectstore.NewLocalStore(cfg.Objects.LocalDir, publicURL)
		filesDir = local.BasePath()
		objects = local
		slog.Info("object store initialized", "type", "local", "dir", filesDir)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.QueueURL != "" {
		publisher = events.NewSQSPublisher(*awsCfg, cfg.Events.QueueURL)
		slog.Info("event publisher initialized", "queue", cfg.Events.QueueURL)
	}

	// Services
	flyers := flyer.NewService(llmClient, objects, cfg.Objects.Prefix)
	generation := service.NewGenerationService(store, llmClient, flyers, publisher, service.ModelSettings{
		Model:       cfg.OpenAI.ContentModel,
		Temperature: cfg.OpenAI.ContentTemperature,
	})
	insights := service.NewInsightsService(store, llmClient, service.ModelSettings{
		Model:       cfg.OpenAI.InsightsModel,
		Temperature: cfg.OpenAI.InsightsTemperature,
	})
	history := service.NewHistoryService(store)

	r := router.New(router.Config{
		HealthHandler:   handler.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		ContentHandler:  handler.NewContentHandler(generation),
		InsightsHandler: handler.NewInsightsHandler(insights),
		HistoryHandler:  handler.NewHistoryHandler(history),
		AuthMiddleware:  middleware.NewAuthMiddleware(resolver),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		FilesDir:        filesDir,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
	return nil
}

// openStore connects to the configured record store with exponential backoff.
func openStore(ctx context.Context, cfg *config.StoreConfig) (repository.RecordStore, error) {
	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(attempts-1, retry.NewExponential(500*time.Millisecond))

	var store repository.RecordStore
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		switch cfg.Type {
		case "mongodb":
			store, err = repository.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		default:
			store, err = repository.OpenSQLStore(ctx, repository.Dialect(cfg.Type), cfg.DSN())
		}
		if err != nil {
			slog.Warn("record store not ready", "type", cfg.Type, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	return store, err
}

func loadAWSConfig(ctx context.Context, cfg *config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
