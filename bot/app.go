// Package bot wires the conversation machine, repositories and the
// Telegram transport into a runnable application.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/namebot/bot/flow"
	"github.com/m3rciful/namebot/bot/query"
	"github.com/m3rciful/namebot/bot/session"
	coreconfig "github.com/m3rciful/namebot/core/config"
	"github.com/m3rciful/namebot/core/logger"
	coretelegram "github.com/m3rciful/namebot/core/telegram"
	"github.com/m3rciful/namebot/core/telegram/sender"
	"github.com/m3rciful/namebot/meaning"
	"github.com/m3rciful/namebot/storage"
)

// App owns the bot's long-lived components.
type App struct {
	cfg        *coreconfig.Config
	sessions   *session.Store
	names      *storage.NameRepo
	favorites  *storage.FavoriteRepo
	meanings   *meaning.Service
	dispatcher *sender.Dispatcher
	machine    *flow.Machine
}

// NewApp builds the application around an open database connection.
func NewApp(cfg *coreconfig.Config, db *sqlx.DB) *App {
	return &App{
		cfg:        cfg,
		sessions:   session.NewStore(cfg.SessionTTL()),
		names:      storage.NewNameRepo(db),
		favorites:  storage.NewFavoriteRepo(db),
		meanings:   meaning.New(cfg.Meaning),
		dispatcher: sender.New(sender.Options{}),
	}
}

// Setup registers commands and the text fallback once the bot exists.
// It satisfies coretelegram.SetupFunc.
func (a *App) Setup(b *tele.Bot) (*coretelegram.Registry, error) {
	if b == nil {
		return nil, fmt.Errorf("bot: nil telebot instance")
	}

	a.machine = flow.New(flow.Options{
		Sessions:  a.sessions,
		Names:     a.names,
		Favorites: a.favorites,
		Meanings:  a.meanings,
		Sender:    &teleSender{bot: b, dispatcher: a.dispatcher},
		PageSize:  a.cfg.Bot.PageSize,
	})

	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", coretelegram.Command{
		Description: "Главное меню",
		Handler: func(c tele.Context) error {
			return a.machine.ShowRoot(updateContext(c), c.Sender().ID)
		},
	})

	reg.RegisterCommand("/stats", coretelegram.Command{
		Description: "Статистика бота",
		AdminOnly:   true,
		Handler:     a.handleStats,
	})

	reg.SetTextFallback(func(c tele.Context) error {
		return a.machine.HandleText(updateContext(c), c.Sender().ID, c.Text())
	})

	logger.App.Info("handlers wired",
		slog.String("event", "wire"),
		slog.Int("commands", len(reg.Commands())),
	)
	return reg, nil
}

// Close releases background resources.
func (a *App) Close() {
	a.sessions.Close()
	a.dispatcher.Close()
}

func (a *App) handleStats(c tele.Context) error {
	ctx := updateContext(c)
	total, err := a.names.CountMatching(ctx, query.Predicate{})
	if err != nil {
		return c.Send("Не удалось получить статистику.")
	}
	favorites, err := a.favorites.List(ctx, c.Sender().ID)
	if err != nil {
		return c.Send("Не удалось получить статистику.")
	}
	return c.Send(fmt.Sprintf("Имен в базе: %d\nВаших избранных: %d", total, len(favorites)))
}

// updateContext carries the update's correlation meta into collaborator calls.
func updateContext(c tele.Context) context.Context {
	chatID, userID := int64(0), int64(0)
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}
	rid, _ := c.Get("rid").(string)
	if rid == "" {
		rid = logger.BuildRID(c.Update().ID, chatID, userID)
	}
	ctx := logger.WithRID(context.Background(), rid)
	return logger.WithUpdateMeta(ctx, userID, chatID)
}
