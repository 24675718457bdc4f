package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/m3rciful/namebot/core/buildinfo"
	coreconfig "github.com/m3rciful/namebot/core/config"
)

var (
	initOnce sync.Once
	closeMu  sync.Mutex
	closer   io.Closer

	levelVar slog.LevelVar

	// L is the base logger; component loggers below derive from it.
	L *slog.Logger

	// App logs application lifecycle events.
	App *slog.Logger
	// TG logs Telegram transport events.
	TG *slog.Logger
	// DB logs database events.
	DB *slog.Logger
	// MIG logs database migration events.
	MIG *slog.Logger
	// SVCNames logs name directory service activity.
	SVCNames *slog.Logger
	// SVCFavorites logs favorites service activity.
	SVCFavorites *slog.Logger
	// SVCMeaning logs meaning lookup activity.
	SVCMeaning *slog.Logger
)

func init() {
	// Usable before Init for early failures; Init replaces it.
	wire(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func wire(base *slog.Logger) {
	L = base
	App = base.With("component", "app")
	TG = base.With("component", "tg")
	DB = base.With("component", "db")
	MIG = base.With("component", "db.migrate")
	SVCNames = base.With("component", "service.names")
	SVCFavorites = base.With("component", "service.favorites")
	SVCMeaning = base.With("component", "service.meaning")
}

// Component returns a child logger tagged with the given component name.
func Component(name string) *slog.Logger {
	if L == nil {
		return slog.Default()
	}
	return L.With("component", name)
}

// Init configures the global structured logger. It may be called only once.
func Init(cfg *coreconfig.Config) error {
	var initErr error
	initOnce.Do(func() {
		levelVar.Set(parseLevel(cfg.Logging.Level))

		out := io.Writer(os.Stdout)
		if cfg.Logging.File != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err != nil {
				initErr = fmt.Errorf("logger: create log dir: %w", err)
				return
			}
			f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				initErr = fmt.Errorf("logger: open log file: %w", err)
				return
			}
			closeMu.Lock()
			closer = f
			closeMu.Unlock()
			out = io.MultiWriter(os.Stdout, f)
		}

		opts := &slog.HandlerOptions{Level: &levelVar}
		var handler slog.Handler
		if strings.EqualFold(cfg.Logging.Format, "json") {
			handler = slog.NewJSONHandler(out, opts)
		} else {
			handler = slog.NewTextHandler(out, opts)
		}

		base := slog.New(handler)
		wire(base)
		slog.SetDefault(base)

		App.Info("logger initialized",
			slog.String("event", "init"),
			slog.String("level", levelVar.Level().String()),
			slog.String("version", buildinfo.Version),
			slog.String("commit", buildinfo.Commit),
		)
	})
	return initErr
}

// Shutdown closes the log file output, if any.
func Shutdown() error {
	closeMu.Lock()
	defer closeMu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Status maps error to a unified status string for logs.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Took returns rounded duration since start for compact logging.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds duration to the nearest millisecond for consistent logging.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}
