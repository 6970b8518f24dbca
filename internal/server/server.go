package server

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

	"github.com/guiaemprende/backend/internal/config"
	"github.com/guiaemprende/backend/internal/database"
	"github.com/guiaemprende/backend/internal/handlers"
	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/guiaemprende/backend/internal/logging"
	"github.com/guiaemprende/backend/internal/queue"
	"github.com/guiaemprende/backend/internal/repository"
	"github.com/guiaemprende/backend/internal/services/registration"
	"github.com/guiaemprende/backend/internal/token"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

// Run wires up and starts the HTTP server.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Token service
	tokens, err := token.NewService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	// Job queue producer. The worker process consumes on the other side.
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			slog.Error("failed to close redis client", "error", closeErr)
		}
	}()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	emailQueue := queue.NewRedis(client, queue.DefaultQueue)

	// Repository and services
	repo := repository.New(db)
	reg := registration.NewService(repo, emailQueue, tokens, cfg.Frontend.URL, cfg.Asset.FilePath)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, reg, repo)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, reg *registration.Service, repo *repository.Repository) {
	h := handlers.New(reg, repo)

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/users/register", h.Register)
	api.GET("/users/verify-email", h.VerifyEmail)
	api.GET("/users/resend-file", h.ResendFile)
	api.GET("/visits/track", h.TrackVisit)
	api.GET("/visits", h.GetVisits)
	api.POST("/articles", h.CreateArticle)
	api.GET("/articles", h.ListArticles)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
