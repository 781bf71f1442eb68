package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/six_jars_app/internal/adapters/ai/gemini"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	"github.com/SscSPs/six_jars_app/internal/core/services"
	"github.com/SscSPs/six_jars_app/internal/handlers"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/SscSPs/six_jars_app/internal/platform/config"
	"github.com/SscSPs/six_jars_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Six Jars API
// @version 1.0
// @description Personal finance ledger based on the six jars budgeting method.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open snapshot store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	sessions := services.NewSessionStore(repos.SnapshotRepo,
		services.WithSnapshotDebounce(cfg.SnapshotDebounce),
		services.WithSessionLogger(logger))

	var assistant gateways.AssistantGateway = gemini.Disabled{}
	if cfg.GeminiAPIKey != "" {
		gw, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		assistant = gw
	}

	aiLimiter, err := middleware.NewMemoryLimiter(cfg.AIRateLimit)
	if err != nil {
		logger.Error("Invalid AI_RATE_LIMIT", slog.String("value", cfg.AIRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	container := services.NewServiceContainer(cfg, sessions, assistant)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, aiLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	// Write out ledgers whose debounced save has not fired yet.
	sessions.Flush(shutdownCtx)
	logger.Info("Server stopped")
}
