// Package middleware provides shared telebot handler wrappers: panic
// recovery, per-update logging with request correlation, per-user rate
// limiting, and an admin gate.
package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/namebot/core/logger"
)

// Recover catches panics in handlers and prevents the bot from crashing.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}

// Logging logs a single receipt line per update and stashes the rid
// in the telebot context for downstream handlers.
func Logging(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		chatID, userID := int64(0), int64(0)
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}

		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)

		attrs := []slog.Attr{
			slog.String("rid", rid),
			slog.Int("update_id", upd.ID),
			slog.Int64("user_id", userID),
		}
		if t := c.Text(); t != "" {
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
		}
		logger.TG.LogAttrs(context.Background(), slog.LevelDebug, "update.received", attrs...)

		start := time.Now()
		err := next(c)
		logger.TG.LogAttrs(context.Background(), slog.LevelDebug, "update.handled",
			slog.String("rid", rid),
			slog.String("status", logger.Status(err)),
			slog.Duration("duration", logger.Took(start)),
		)
		return err
	}
}

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Interval time.Duration
	// Exclude lists update kinds that bypass limiting: "message", "callback".
	Exclude   []string
	OnLimited tele.HandlerFunc
}

// RateLimit returns a middleware that enforces a minimum interval
// between updates from the same user.
func RateLimit(opts RateLimitOptions) tele.MiddlewareFunc {
	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, kind := range opts.Exclude {
		excluded[kind] = struct{}{}
	}
	var (
		mu       sync.Mutex
		lastSeen = make(map[int64]time.Time)
	)
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}

			kind := "other"
			switch {
			case c.Update().Callback != nil:
				kind = "callback"
			case c.Update().Message != nil:
				kind = "message"
			}
			if _, skip := excluded[kind]; skip {
				return next(c)
			}

			now := time.Now()
			mu.Lock()
			if last, ok := lastSeen[user.ID]; ok && now.Sub(last) < opts.Interval {
				mu.Unlock()
				logger.TG.Warn("rate limit",
					slog.String("event", "tg.rate_limit"),
					slog.Int64("user_id", user.ID),
				)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}
			lastSeen[user.ID] = now
			mu.Unlock()
			return next(c)
		}
	}
}

// AdminOnly ensures that only the configured admin can invoke downstream handlers.
// A zero adminID disables the check.
func AdminOnly(adminID int64) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if adminID != 0 && c.Sender().ID != adminID {
				return nil
			}
			return next(c)
		}
	}
}
