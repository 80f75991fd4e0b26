package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/elliottsj/botbot-web/internal/application/config"
	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/application/metric"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/memory"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres/repository"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/handlers"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/server"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// shutdownContext bounds graceful shutdown. It is detached from the signal
// context, which is already canceled by the time shutdown starts.
func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownTimeout)
}

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: slog.LevelInfo},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("connect to postgres", slog.Any(constant.Error, err))
		os.Exit(1)
	}
	defer dbConn.Close()

	userRepo := repository.NewUserRepo(dbConn)
	channelRepo := repository.NewChannelRepo(dbConn)
	membershipRepo := repository.NewMembershipRepo(dbConn)
	logRepo := repository.NewLogRepo(dbConn)
	sessionRepo := memory.NewSessionRepository()
	streamRepo := memory.NewStreamRepository()

	accountUsecase := usecase.NewAccountUsecase(userRepo)
	channelUsecase := usecase.NewChannelUsecase(channelRepo, membershipRepo)
	logUsecase := usecase.NewLogUsecase(logRepo, channelRepo, streamRepo)
	sessionUsecase := usecase.NewSessionUsecase([]byte(cfg.SessionSecret), sessionRepo)

	dashboardHandler := handlers.NewDashboardHandler(channelUsecase)
	channelHandler := handlers.NewChannelHandler(channelUsecase)
	accountHandler := handlers.NewAccountHandler(accountUsecase)
	authHandler := handlers.NewAuthHandler(accountUsecase, sessionUsecase)
	timezoneHandler := handlers.NewTimezoneHandler(accountUsecase, sessionUsecase)
	streamHandler := handlers.NewStreamHandler(channelUsecase, logUsecase, streamRepo)
	logPushHandler := handlers.NewLogPushHandler(cfg.BotAPIToken, logUsecase)

	echoSrv, err := server.New(
		sessionUsecase,
		accountUsecase,
		dashboardHandler,
		channelHandler,
		accountHandler,
		authHandler,
		timezoneHandler,
		streamHandler,
		logPushHandler,
	)
	if err != nil {
		slog.Error("build http server", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	metricsSrv := metric.NewServer()

	echoSrvCh := make(chan error, 1)
	metricsSrvCh := make(chan error, 1)

	go func() {
		echoSrvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	go func() {
		metricsSrvCh <- metricsSrv.Start(":" + cfg.MetricPort)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers due to context cancel")
	case err := <-echoSrvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	case err := <-metricsSrvCh:
		slog.Error(
			"Metrics server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	}

	timeoutCtx, timeoutCancel := shutdownContext()
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
	}

	if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}
}
