package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/drkailash/clinic-platform/internal/api/router"
	"github.com/drkailash/clinic-platform/internal/appointments"
	"github.com/drkailash/clinic-platform/internal/assistant"
	"github.com/drkailash/clinic-platform/internal/auth"
	appconfig "github.com/drkailash/clinic-platform/internal/config"
	"github.com/drkailash/clinic-platform/internal/contact"
	"github.com/drkailash/clinic-platform/internal/notify"
	"github.com/drkailash/clinic-platform/internal/observability/metrics"
	"github.com/drkailash/clinic-platform/pkg/logging"
)

func main() {
	// Load .env in development; ignored when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"store_driver", cfg.StoreDriver,
	)

	ctx := context.Background()

	siteMetrics := metrics.NewSiteMetrics(nil)

	// Storage backends for appointments and contact messages.
	apptRepo, contactRepo, closeStore, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Doctor email notifications for contact messages.
	emailSender := buildEmailSender(ctx, cfg, logger)

	// Services and handlers.
	apptSvc := appointments.NewService(apptRepo, logger, siteMetrics)
	apptHandler := appointments.NewHandler(apptSvc, logger)

	contactSvc := contact.NewService(contactRepo, emailSender, cfg.DoctorEmail, logger)
	contactHandler := contact.NewHandler(contactSvc, logger)

	var authHandler *auth.Handler
	if cfg.SessionJWTSecret != "" {
		authSvc := auth.NewService(auth.Config{
			Username:      cfg.DoctorUsername,
			PasswordHash:  cfg.DoctorPasswordHash,
			PlainPassword: cfg.DoctorPassword,
			JWTSecret:     cfg.SessionJWTSecret,
			TokenTTL:      cfg.SessionTTL,
		}, logger)
		authHandler = auth.NewHandler(authSvc, logger)
	} else {
		logger.Warn("SESSION_JWT_SECRET not set; doctor login disabled")
	}

	assistantHandler := buildAssistantHandler(ctx, cfg, logger, siteMetrics)

	r := router.New(&router.Config{
		Logger:              logger,
		AppointmentsHandler: apptHandler,
		ContactHandler:      contactHandler,
		AuthHandler:         authHandler,
		AssistantHandler:    assistantHandler,
		MetricsHandler:      promhttp.Handler(),
		SessionJWTSecret:    cfg.SessionJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		LoginRateLimit:      cfg.LoginRateLimit,
		LoginRateBurst:      cfg.LoginRateBurst,
		SubmitRateLimit:     cfg.SubmitRateLimit,
		SubmitRateBurst:     cfg.SubmitRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildStores selects the persistence backend from STORE_DRIVER.
func buildStores(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (appointments.Repository, contact.Repository, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("using postgres store")
		return appointments.NewPGRepository(pool), contact.NewPGRepository(pool), pool.Close, nil

	case "memory":
		// Volatile; only useful for local development and demos.
		logger.Warn("using in-memory store, data will not survive restarts")
		return appointments.NewMemoryRepository(), contact.NewMemoryRepository(), func() {}, nil

	default:
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("using firestore store", "project_id", cfg.FirestoreProjectID)
		return appointments.NewFirestoreRepository(client), contact.NewFirestoreRepository(client), func() { _ = client.Close() }, nil
	}
}

// buildEmailSender picks the notification transport from EMAIL_PROVIDER.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			logger.Warn("sendgrid selected but SENDGRID_API_KEY not set; email disabled")
			return notify.NewStubEmailSender(logger)
		}
		return sender

	case "ses":
		loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
		if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
			loaders = append(loaders, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
		if err != nil {
			logger.Warn("failed to load AWS config; email disabled", "error", err)
			return notify.NewStubEmailSender(logger)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)

	default:
		return notify.NewStubEmailSender(logger)
	}
}

// buildAssistantHandler wires the Gemini client and its redis cache; returns
// nil when no API key is configured so the route stays unregistered.
func buildAssistantHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, m *metrics.SiteMetrics) *assistant.Handler {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; diagnosis assistant disabled")
		return nil
	}

	client, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	var cache *assistant.Cache
	if cfg.RedisAddr != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(redisOptions)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not available, assistant cache disabled", "error", err)
		} else {
			cache = assistant.NewCache(redisClient, cfg.AssistantCacheTTL)
		}
	}

	svc := assistant.NewService(client, cache, logger, m)
	return assistant.NewHandler(svc, logger)
}
