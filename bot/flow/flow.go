// Package flow is the conversation state machine. Each incoming text is
// dispatched against the sender's session step; handlers mutate the
// session, touch collaborators, and reply with text plus the keyboard of
// allowed next inputs.
package flow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/namebot/bot/catalog"
	"github.com/m3rciful/namebot/bot/query"
	"github.com/m3rciful/namebot/bot/render"
	"github.com/m3rciful/namebot/bot/session"
	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/meaning"
	"github.com/m3rciful/namebot/storage"
)

// Sender delivers one outbound message. A nil markup keeps the chat's
// current keyboard.
type Sender interface {
	Send(ctx context.Context, userID int64, text string, markup *tele.ReplyMarkup) error
}

// NameDirectory is the read side of the names store.
type NameDirectory interface {
	ListMatching(ctx context.Context, p query.Predicate, offset, limit int) ([]storage.Name, error)
	GetByExactName(ctx context.Context, name string) (*storage.Name, error)
	Random(ctx context.Context) (*storage.Name, error)
}

// FavoriteBook manages a user's favorite names.
type FavoriteBook interface {
	List(ctx context.Context, userID int64) ([]storage.Favorite, error)
	Create(ctx context.Context, userID int64, name string) error
	Delete(ctx context.Context, userID int64, name string) error
}

// MeaningLookup resolves a name to its meaning on the external site.
type MeaningLookup interface {
	Lookup(ctx context.Context, name string) (*meaning.Meaning, error)
}

// Options wires the machine's collaborators.
type Options struct {
	Sessions  *session.Store
	Names     NameDirectory
	Favorites FavoriteBook
	Meanings  MeaningLookup
	Sender    Sender
	PageSize  int
}

// Machine dispatches incoming messages per the current session step.
type Machine struct {
	sessions  *session.Store
	names     NameDirectory
	favorites FavoriteBook
	meanings  MeaningLookup
	send      Sender
	pageSize  int
}

// New builds a Machine. PageSize defaults to 30 when unset.
func New(opts Options) *Machine {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 30
	}
	return &Machine{
		sessions:  opts.Sessions,
		names:     opts.Names,
		favorites: opts.Favorites,
		meanings:  opts.Meanings,
		send:      opts.Sender,
		pageSize:  pageSize,
	}
}

// InConversation reports whether the user has an active multi-turn flow.
func (m *Machine) InConversation(userID int64) bool {
	return m.sessions.Has(userID)
}

// HandleText routes one incoming message. The universal back caption
// pre-empts all state handling; otherwise the session step picks the
// handler, and no session means the root menu.
func (m *Machine) HandleText(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)

	if text == catalog.CaptionBack {
		return m.ShowRoot(ctx, userID)
	}

	sess, ok := m.sessions.Get(userID)
	if !ok {
		return m.handleRoot(ctx, userID, text)
	}

	switch sess.Step {
	case session.StepFilter:
		return m.handleFilter(ctx, userID, sess, text)
	case session.StepLists:
		return m.handleLists(ctx, userID, sess, text)
	case session.StepMeaning:
		return m.handleMeaning(ctx, userID, text)
	case session.StepFavorites:
		return m.handleFavorites(ctx, userID, sess, text)
	case session.StepRandom:
		return m.handleRandom(ctx, userID, sess, text)
	default:
		return m.reset(ctx, userID)
	}
}

// ShowRoot deletes the session and presents the main menu.
func (m *Machine) ShowRoot(ctx context.Context, userID int64) error {
	m.sessions.Delete(userID)
	return m.send.Send(ctx, userID, msgMainMenu, kbMain)
}

func (m *Machine) handleRoot(ctx context.Context, userID int64, text string) error {
	key, ok := catalog.Resolve(catalog.MenuMain, text)
	if !ok {
		logger.Debug(ctx, "flow", "root.unknown",
			slog.String("payload", logger.SanitizeLimit(text, 64)),
		)
		return m.send.Send(ctx, userID, msgChooseMenu, kbMain)
	}

	switch key {
	case catalog.KeySearchByFilters:
		m.sessions.Set(userID, session.New(session.StepFilter))
		return m.send.Send(ctx, userID, msgChooseFilters, kbFilters)

	case catalog.KeyNameLists:
		m.sessions.Set(userID, session.New(session.StepLists))
		return m.send.Send(ctx, userID, msgChooseCategory, kbLists)

	case catalog.KeyNameMeaning:
		m.sessions.Set(userID, session.New(session.StepMeaning))
		return m.send.Send(ctx, userID, msgEnterMeaningName, kbBack)

	case catalog.KeyRandomName:
		sess := session.New(session.StepRandom)
		m.sessions.Set(userID, sess)
		if err := m.send.Send(ctx, userID, msgSearchingRandom, kbRandom); err != nil {
			return err
		}
		return m.rollRandom(ctx, userID, sess)

	case catalog.KeyFavorites:
		m.sessions.Set(userID, session.New(session.StepFavorites))
		favorites, err := m.favorites.List(ctx, userID)
		if err != nil {
			return m.fail(ctx, userID, "favorites.list", err)
		}
		return m.send.Send(ctx, userID, render.FavoritesBlock(msgFavoritesPrompt, favorites), kbFavorites)

	case catalog.KeySettings:
		// stub section, no session
		return m.send.Send(ctx, userID, msgSettingsStub, kbSettings)
	}

	return m.send.Send(ctx, userID, msgChooseMenu, kbMain)
}

// reset recovers from an inconsistent session: drop it and restart from
// the root so the conversation can never get stuck.
func (m *Machine) reset(ctx context.Context, userID int64) error {
	logger.Warn(ctx, "flow", "session.reset", slog.Int64("user_id", userID))
	m.sessions.Delete(userID)
	if err := m.send.Send(ctx, userID, msgTryAgain, nil); err != nil {
		return err
	}
	return m.send.Send(ctx, userID, msgMainMenu, kbMain)
}

// fail logs a collaborator failure and degrades to a generic message;
// it never propagates the error to the dispatcher.
func (m *Machine) fail(ctx context.Context, userID int64, event string, err error) error {
	logger.Error(ctx, "flow", event,
		slog.Int64("user_id", userID),
		slog.String("err", err.Error()),
	)
	return m.send.Send(ctx, userID, msgGenericFailure, nil)
}

// validName accepts trimmed text of 2..16 runes that is not a bare number.
func validName(text string) bool {
	trimmed := strings.TrimSpace(text)
	n := len([]rune(trimmed))
	if n < 2 || n > 16 {
		return false
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return false
	}
	return true
}
