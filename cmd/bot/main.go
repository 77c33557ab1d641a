// Package main is the entry point for the Telegram menu bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-menu-bot/internal/bot"
	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/pkg/db"
	"telegram-menu-bot/internal/repository"
	"telegram-menu-bot/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Initialize repositories
	menuRepo := repository.NewMenuRepository(dbPool.Pool)
	selectionRepo := repository.NewSelectionRepository(dbPool.Pool)

	// The selection log lives for the whole process; the menu tables are
	// created at runtime through the admin panel.
	if err := selectionRepo.EnsureTable(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create selection table")
	}

	// Initialize services
	menuService := service.NewMenuService(menuRepo, selectionRepo)
	reportService := service.NewReportService(
		selectionRepo,
		cfg.Reports.TopLimit,
		cfg.Reports.RecentLimit,
	)

	// Initialize bot
	menuBot, err := bot.New(&bot.Dependencies{
		Config:        cfg,
		MenuService:   menuService,
		ReportService: reportService,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in a goroutine
	go func() {
		log.Info().Msg("Bot is starting...")
		menuBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	menuBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
