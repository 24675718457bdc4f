package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/namebot/bot"
	coreconfig "github.com/m3rciful/namebot/core/config"
	"github.com/m3rciful/namebot/core/database"
	"github.com/m3rciful/namebot/core/logger"
	coretelegram "github.com/m3rciful/namebot/core/telegram"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cfg.Database); err != nil {
		return err
	}

	app := bot.NewApp(cfg, db)
	defer app.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	return coretelegram.Run(ctx, coretelegram.RunOptions{
		Config: cfg,
		Setup:  app.Setup,
		OnStart: func(ctx context.Context, _ *tele.Bot) error {
			logger.App.Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.Took(startedAt)),
			)
			return nil
		},
		OnStop: func(context.Context) error {
			logger.App.Info("shutting down", slog.String("event", "shutdown"))
			return nil
		},
	})
}
