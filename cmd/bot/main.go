package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kopilka/internal/ai"
	"kopilka/internal/bot"
	"kopilka/internal/config"
	"kopilka/internal/database"
	"kopilka/internal/logger"
	"kopilka/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.RequireBotToken(); err != nil {
		return err
	}
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}

	dbManager, err := database.NewManager(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	financeService := services.NewFinanceService(db, categoryService)

	extractor := ai.NewOpenAIExtractor(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.AIModel)
	transcriber := ai.NewWhisperTranscriber(cfg.OpenAIAPIKey)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bot.New(api, userService, categoryService, financeService, extractor, transcriber)
	return b.Run(ctx)
}
