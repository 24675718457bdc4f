package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/namebot/core/config"
	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/core/telegram/middleware"
)

// SetupFunc wires application handlers once the bot instance exists.
// It returns the registry whose commands and text fallback get routed.
type SetupFunc func(bot *tele.Bot) (*Registry, error)

// RunOptions controls the behaviour of Run.
type RunOptions struct {
	Config *coreconfig.Config
	Setup  SetupFunc

	OnStart func(ctx context.Context, bot *tele.Bot) error
	OnStop  func(ctx context.Context) error
}

// Run composes and runs a Telegram bot until the provided context is done.
func Run(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("telegram: nil config provided")
	}
	if opts.Setup == nil {
		return fmt.Errorf("telegram: nil setup provided")
	}
	cfg := opts.Config

	buildStart := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: BuildPoller(cfg),
		Client: BuildHTTPClient(),
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}

	logger.TG.Info("bot initialized",
		slog.String("event", "mode"),
		slog.String("mode", cfg.Telegram.RunMode),
		slog.Duration("duration", logger.Took(buildStart)),
	)

	reg, err := opts.Setup(bot)
	if err != nil {
		return fmt.Errorf("telegram: setup failed: %w", err)
	}
	if reg == nil {
		reg = NewRegistry()
	}

	bot.Use(middleware.Recover)
	if interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond; interval > 0 {
		bot.Use(middleware.RateLimit(middleware.RateLimitOptions{
			Interval: interval,
			Exclude:  cfg.RateLimit.ExcludeUpdates,
		}))
	}
	bot.Use(middleware.Logging)

	adminGate := middleware.AdminOnly(cfg.Telegram.AdminID)
	for name, cmd := range reg.Commands() {
		h := cmd.Handler
		if cmd.AdminOnly {
			h = adminGate(h)
		}
		bot.Handle(name, h)
	}

	bot.Handle(tele.OnText, func(c tele.Context) error {
		if cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
			h := cmd.Handler
			if cmd.AdminOnly {
				h = adminGate(h)
			}
			return h(c)
		}
		if fb := reg.TextFallback(); fb != nil {
			return fb(c)
		}
		return nil
	})

	if err := bot.SetCommands(reg.ListCommands()); err != nil {
		logger.TG.Warn("set commands failed",
			slog.String("event", "set_commands"),
			slog.String("err", err.Error()),
		)
	}

	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, bot); err != nil {
			return err
		}
	}

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		runErr = ctx.Err()
	case <-runDone:
	}

	if opts.OnStop != nil {
		if stopErr := opts.OnStop(context.Background()); stopErr != nil {
			return stopErr
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
