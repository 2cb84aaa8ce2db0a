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

	"github.com/jaekwang-park/todo-summary/internal/cognito"
	"github.com/jaekwang-park/todo-summary/internal/config"
	todohttp "github.com/jaekwang-park/todo-summary/internal/http"
	"github.com/jaekwang-park/todo-summary/internal/identity"
	"github.com/jaekwang-park/todo-summary/internal/logging"
	"github.com/jaekwang-park/todo-summary/internal/middleware"
	"github.com/jaekwang-park/todo-summary/internal/notifier"
	"github.com/jaekwang-park/todo-summary/internal/repository"
	"github.com/jaekwang-park/todo-summary/internal/service"
	"github.com/jaekwang-park/todo-summary/internal/summarizer"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := logging.New(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.ParseLogLevel())
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"identity_provider", cfg.IdentityProvider,
		"store_driver", cfg.StoreDriver,
		"summarizer", cfg.Summarizer.Provider,
		"log_level", cfg.LogLevel,
	)

	todoRepo, closeStore, err := newTodoStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sum, err := newSummarizer(ctx, cfg.Summarizer)
	if err != nil {
		return err
	}
	if cfg.Slack.WebhookURL == "" {
		logger.Warn("SLACK_WEBHOOK_URL not set: summaries will fail to deliver")
	}
	slack := notifier.NewSlackWebhook(cfg.Slack.WebhookURL)

	svcs := todohttp.Services{
		Todos:     service.NewTodoService(todoRepo),
		Summaries: service.NewSummaryService(todoRepo, sum, slack),
	}

	// Cognito client + Auth service
	if cfg.IdentityProvider == config.IdentityProviderCognito && cfg.Cognito.AppClientID != "" {
		cognitoClient, err := cognito.NewAWSClient(
			ctx,
			cfg.Cognito.Region,
			cfg.Cognito.AppClientID,
			cfg.Cognito.AppClientSecret,
		)
		if err != nil {
			return err
		}
		svcs.Auth = service.NewAuthService(cognitoClient)
		logger.Info("cognito client initialized", "region", cfg.Cognito.Region)
	}

	authCfg := middleware.AuthConfig{DevMode: cfg.AuthDevMode}
	if !cfg.AuthDevMode {
		verifier, err := newVerifier(cfg)
		if err != nil {
			return err
		}
		authCfg.Verifier = verifier
	}
	auth, err := middleware.NewAuth(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	router := todohttp.NewRouter(svcs, auth.Middleware)
	srv := todohttp.NewServer(todohttp.ServerConfig{
		Port:        cfg.ServerPort,
		CORSOrigins: cfg.CORSOrigins,
	}, logger, router)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

func newTodoStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.TodoRepository, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory todo store: data is lost on restart")
		return repository.NewMemoryTodo(), func() {}, nil
	}

	db, err := repository.NewDB(cfg.DB.DSN())
	if err != nil {
		return nil, nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("database connected")

	return repository.NewPostgresTodo(db), func() { db.Close() }, nil
}

func newSummarizer(ctx context.Context, cfg config.SummarizerConfig) (summarizer.Summarizer, error) {
	switch cfg.Provider {
	case config.SummarizerOpenAI:
		return summarizer.NewLLMClient(ctx, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		return summarizer.NewCohereClient(cfg.CohereBaseURL, cfg.CohereAPIKey, cfg.CohereModel), nil
	}
}

func newVerifier(cfg config.Config) (identity.Verifier, error) {
	switch cfg.IdentityProvider {
	case config.IdentityProviderCognito:
		return identity.NewCognitoVerifier(cfg.Cognito.Region, cfg.Cognito.UserPoolID, cfg.Cognito.AppClientID)
	default:
		projectID, err := cfg.Firebase.ResolveProjectID()
		if err != nil {
			return nil, err
		}
		return identity.NewFirebaseVerifier(projectID)
	}
}
