package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/enfluent/autograde/config"
	"github.com/enfluent/autograde/controller"
	"github.com/enfluent/autograde/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	// The per-call deadline lives on the request context; the client timeout
	// only guards against a hung connection.
	httpClient := &http.Client{Timeout: cfg.LLM.Timeout + 5*time.Second}

	completer, err := services.NewChatCompleter(context.Background(), cfg, httpClient)
	if err != nil {
		logger.Error("failed to create chat completer", "provider", cfg.LLM.Provider, "error", err)
		os.Exit(1)
	}
	logger.Info("chat completer ready", "provider", cfg.LLM.Provider, "deployment", cfg.LLM.DeploymentName)

	prompts := services.NewPromptBuilder()
	gradingService := services.NewGradingService(completer, prompts, cfg.LLM.Timeout, logger)
	chatbotService := services.NewChatbotService(completer, prompts, cfg.LLM.Timeout, logger)

	router := controller.NewRouter(
		controller.RouterConfig{AllowOrigins: cfg.Server.AllowOrigins, Logger: logger},
		controller.NewGradingController(gradingService, logger),
		controller.NewChatbotController(chatbotService, logger),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Log.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
