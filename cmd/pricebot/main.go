package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lentabot/internal/bot"
	"lentabot/internal/config"
	"lentabot/internal/scraper"
	"lentabot/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "text").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Bot.Token == "" {
		log.Error("BOT_TOKEN is required")
		os.Exit(1)
	}

	scraperService := scraper.New(cfg, log)

	b, err := bot.New(cfg.Bot.Token, cfg.Bot.Debug, scraperService, log)
	if err != nil {
		log.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}

	log.Info("bot stopped")
}
