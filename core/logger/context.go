package logger

import (
	"context"
	"fmt"
	"log/slog"
	"unicode"
)

type contextKey string

const (
	ctxRID    contextKey = "rid"
	ctxUserID contextKey = "user_id"
	ctxChatID contextKey = "chat_id"
)

// WithRID attaches a request correlation id to the context.
func WithRID(ctx context.Context, rid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRID, rid)
}

// RIDFrom extracts the rid from context if present.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(ctxRID).(string); ok {
		return s
	}
	return ""
}

// WithUpdateMeta attaches the update's user and chat identifiers to
// context. The update id itself travels inside the rid.
func WithUpdateMeta(ctx context.Context, userID, chatID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	return context.WithValue(ctx, ctxChatID, chatID)
}

// UserIDFrom extracts the Telegram user id from context.
func UserIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ctxUserID).(int64); ok {
		return id
	}
	return 0
}

// ChatIDFrom extracts the chat id from context.
func ChatIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ctxChatID).(int64); ok {
		return id
	}
	return 0
}

// BuildRID returns a correlation identifier in the format updateID:chatID:userID.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("%d:%d:%d", updateID, chatID, userID)
}

func metaAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if rid := RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	if id := UserIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int64("user_id", id))
	}
	// chat_id equals user_id in private chats, log it only when distinct
	if id := ChatIDFrom(ctx); id != 0 && id != UserIDFrom(ctx) {
		attrs = append(attrs, slog.Int64("chat_id", id))
	}
	return attrs
}

func logEvent(ctx context.Context, log *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if log == nil {
		log = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log.LogAttrs(ctx, level, event, append(metaAttrs(ctx), attrs...)...)
}

// Debug logs a debug event through the named component logger, enriched with context meta.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, Component(component), slog.LevelDebug, event, attrs...)
}

// Info logs an info event through the named component logger.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, Component(component), slog.LevelInfo, event, attrs...)
}

// Warn logs a warning event through the named component logger.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, Component(component), slog.LevelWarn, event, attrs...)
}

// Error logs an error event through the named component logger.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, Component(component), slog.LevelError, event, attrs...)
}

// Sanitize trims control runes from s to keep log payloads clean.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			out = append(out, r)
			continue
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) || r == 0x7F {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// SanitizeLimit applies Sanitize and limits the output length in runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	cleaned := []rune(Sanitize(s))
	if len(cleaned) <= max {
		return string(cleaned)
	}
	return string(cleaned[:max])
}
