package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/guiaemprende/backend/internal/config"
	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/guiaemprende/backend/internal/logging"
	"github.com/guiaemprende/backend/internal/queue"
	"github.com/guiaemprende/backend/internal/services/email"
	"github.com/guiaemprende/backend/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

// Run wires up and starts the email worker process.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to init i18n: %w", err)
	}

	tokens, err := token.NewService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	sender, err := email.NewService(&cfg.SMTP, tokens, cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create email service: %w", err)
	}

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

	slog.Info("starting email worker",
		"redis", cfg.Redis.Addr,
		"queue", queue.DefaultQueue,
		"smtp", cfg.SMTP.Host,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := New(queue.NewRedis(client, queue.DefaultQueue), sender)
	return w.Run(ctx)
}
