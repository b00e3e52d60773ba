package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/providers/gemini"
	"github.com/sandevgo/memobot/internal/service/chat"
	"github.com/sandevgo/memobot/internal/service/intent"
	"github.com/sandevgo/memobot/internal/service/memory"
	"github.com/sandevgo/memobot/internal/storage/sqlite"
	"github.com/sandevgo/memobot/internal/transport/httpapi"
	"github.com/sandevgo/memobot/internal/transport/telegram"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/srv"
	"github.com/sandevgo/memobot/pkg/tokens"
)

type App struct {
	cfg      *config.AppConfig
	services []srv.Service
}

// NewServices wires the application. Services are returned in start order.
func NewServices(ctx context.Context) *App {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	geminiCfg := config.NewGeminiConfig(ctx)

	// 2. Storage
	store, closeDB, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup("database", closeDB))

	// 3. Gateway
	gateway, err := gemini.NewClient(ctx, geminiCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Gemini client")
	}
	services = append(services, srv.NewCleanup("gemini", gateway.Close))

	// 4. Chat service
	assembler, err := initAssembler(ctx, appCfg, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize context assembler")
	}
	svc := chat.NewService(store, intent.New(store), assembler, gateway, geminiCfg.GetImagePrompt())

	// 5. Transports
	services = append(services, httpapi.NewServer(ctx, appCfg, svc))

	if appCfg.IsTelegramSelected() {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), svc)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return &App{cfg: appCfg, services: services}
}

func initStorage(ctx context.Context, cfg core.AppConfig) (*sqlite.Store, func() error, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewStore(db), db.Close, nil
}

func initAssembler(ctx context.Context, cfg *config.AppConfig, repo core.TranscriptRepository) (*memory.Assembler, error) {
	window := memory.NewWindow(cfg)

	var counter core.TokenCounter
	if window.MaxTokens > 0 {
		c, err := tokens.New(cfg.TokenizerEncoding)
		if err != nil {
			return nil, err
		}
		counter = c
	}

	log.FromCtx(ctx).Debug().
		Int("max_turns", window.MaxTurns).
		Int("max_tokens", window.MaxTokens).
		Msg("context window")

	return memory.NewAssembler(repo, window, counter), nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := config.EnvPath(runtimePath)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
