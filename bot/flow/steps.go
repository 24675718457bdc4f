package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/namebot/bot/catalog"
	"github.com/m3rciful/namebot/bot/paging"
	"github.com/m3rciful/namebot/bot/query"
	"github.com/m3rciful/namebot/bot/render"
	"github.com/m3rciful/namebot/bot/session"
	"github.com/m3rciful/namebot/core/logger"
)

// handleFilter serves the parametric search: filter captions toggle the
// selection set, apply/more fetch pages of the resolved predicate.
func (m *Machine) handleFilter(ctx context.Context, userID int64, sess *session.Session, text string) error {
	switch text {
	case catalog.CaptionApply:
		if len(sess.Filters) == 0 {
			return m.send.Send(ctx, userID, msgNoFiltersSelected, kbFilters)
		}
		pred := query.Build(sess.Filters)
		sess.Query = &pred
		sess.Page = 0
		return m.sendNamePage(ctx, userID, sess)

	case catalog.CaptionMore:
		if sess.Query == nil {
			// nothing applied yet, treat as apply
			if len(sess.Filters) == 0 {
				return m.send.Send(ctx, userID, msgNoFiltersSelected, kbFilters)
			}
			pred := query.Build(sess.Filters)
			sess.Query = &pred
			sess.Page = 0
		}
		return m.sendNamePage(ctx, userID, sess)
	}

	key, known := catalog.Resolve(catalog.MenuFilters, text)
	if !known {
		return m.send.Send(ctx, userID, msgFilterFromMenu, kbFilters)
	}

	sess.ToggleFilter(key)
	sess.Query = nil // selection changed, cached predicate is stale
	m.sessions.Set(userID, sess)

	captions := make([]string, 0, len(sess.Filters))
	for _, k := range sess.Filters {
		captions = append(captions, catalog.Caption(catalog.MenuFilters, k))
	}
	if err := m.send.Send(ctx, userID, fmt.Sprintf(msgCurrentFilters, strings.Join(captions, ", ")), kbFilters); err != nil {
		return err
	}

	if len(sess.Filters) == catalog.Size(catalog.MenuFilters) {
		return m.send.Send(ctx, userID, msgAllFiltersSelected, kbApply)
	}
	return nil
}

// handleLists fixes a category predicate on first choice, then treats
// every further message as a "load more" request.
func (m *Machine) handleLists(ctx context.Context, userID int64, sess *session.Session, text string) error {
	if sess.Query == nil {
		key, known := catalog.Resolve(catalog.MenuLists, text)
		if !known {
			return m.send.Send(ctx, userID, msgCategoryFromMenu, kbLists)
		}
		pred := query.ByCategory(key)
		sess.Query = &pred
		sess.Page = 0
	}
	return m.sendNamePage(ctx, userID, sess)
}

// sendNamePage fetches the next page of the session's cached predicate,
// advances the cursor and replies with the rendered block.
func (m *Machine) sendNamePage(ctx context.Context, userID int64, sess *session.Session) error {
	page := sess.Page + 1
	offset := paging.Offset(page, m.pageSize)
	names, err := m.names.ListMatching(ctx, *sess.Query, offset, m.pageSize)
	if err != nil {
		return m.fail(ctx, userID, "names.page", err)
	}

	sess.Page = page
	m.sessions.Set(userID, sess)

	logger.Debug(ctx, "flow", "page.sent",
		slog.Int64("user_id", userID),
		slog.Int("page", page),
		slog.Int("rows", len(names)),
	)
	return m.send.Send(ctx, userID, render.NameList(names), kbMore)
}

// handleMeaning answers name-meaning queries: external lookup first,
// local note as fallback. The session persists so the user can ask again.
func (m *Machine) handleMeaning(ctx context.Context, userID int64, text string) error {
	if !validName(text) {
		return m.send.Send(ctx, userID, msgInvalidName, kbBack)
	}
	name := strings.TrimSpace(text)

	if found, err := m.meanings.Lookup(ctx, name); err == nil && found != nil {
		return m.send.Send(ctx, userID, render.Truncate(found.Name+"\n\n"+found.Meaning), kbBack)
	} else if err != nil {
		// treated as absent, fall through to the local note
		logger.Warn(ctx, "flow", "meaning.lookup",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}

	rec, err := m.names.GetByExactName(ctx, name)
	if err != nil {
		return m.fail(ctx, userID, "meaning.local", err)
	}
	if rec != nil && rec.Note != "" {
		return m.send.Send(ctx, userID, fmt.Sprintf(msgMeaningLocalNote, rec.Note), kbBack)
	}
	return m.send.Send(ctx, userID, msgMeaningNotFound, kbBack)
}

// handleFavorites stages typed names as drafts and executes add/delete
// actions against the staged draft.
func (m *Machine) handleFavorites(ctx context.Context, userID int64, sess *session.Session, text string) error {
	action, isAction := catalog.Resolve(catalog.MenuFavorites, text)
	if !isAction {
		if !validName(text) {
			return m.send.Send(ctx, userID, msgInvalidName, kbFavorites)
		}
		sess.Draft = &session.Draft{Name: strings.TrimSpace(text)}
		m.sessions.Set(userID, sess)
		return m.send.Send(ctx, userID, msgChooseActionNow, kbFavorites)
	}

	if sess.Draft == nil || sess.Draft.Name == "" {
		return m.send.Send(ctx, userID, msgEnterNameFirst, kbFavorites)
	}

	var header string
	switch action {
	case catalog.KeyFavoriteAdd:
		if err := m.favorites.Create(ctx, userID, sess.Draft.Name); err != nil {
			return m.fail(ctx, userID, "favorites.create", err)
		}
		header = msgFavoriteAdded
	case catalog.KeyFavoriteDelete:
		if err := m.favorites.Delete(ctx, userID, sess.Draft.Name); err != nil {
			return m.fail(ctx, userID, "favorites.delete", err)
		}
		header = msgFavoriteDeleted
	default:
		return m.reset(ctx, userID)
	}

	favorites, err := m.favorites.List(ctx, userID)
	if err != nil {
		return m.fail(ctx, userID, "favorites.list", err)
	}
	return m.send.Send(ctx, userID, render.FavoritesBlock(header, favorites), kbFavorites)
}

// handleRandom serves the roulette: draws stage a draft, accept persists
// it and ends the flow, add-to-favorites persists and continues.
func (m *Machine) handleRandom(ctx context.Context, userID int64, sess *session.Session, text string) error {
	action, known := catalog.Resolve(catalog.MenuRandom, text)
	if !known {
		return m.send.Send(ctx, userID, msgActionFromMenu, kbRandom)
	}

	switch action {
	case catalog.KeyAccept:
		if sess.Draft == nil || sess.Draft.ID == 0 {
			return m.reset(ctx, userID)
		}
		if err := m.favorites.Create(ctx, userID, sess.Draft.Name); err != nil {
			return m.fail(ctx, userID, "favorites.create", err)
		}
		if err := m.send.Send(ctx, userID, msgRandomAccepted, nil); err != nil {
			return err
		}
		return m.ShowRoot(ctx, userID)

	case catalog.KeyAddToFavorites:
		if sess.Draft == nil || sess.Draft.ID == 0 {
			return m.send.Send(ctx, userID, msgTryAgain, kbRandom)
		}
		if err := m.favorites.Create(ctx, userID, sess.Draft.Name); err != nil {
			return m.fail(ctx, userID, "favorites.create", err)
		}
		return m.send.Send(ctx, userID, msgRandomFavorited, kbRandom)

	default:
		// requestAnother and any other known caption draw a fresh name
		return m.rollRandom(ctx, userID, sess)
	}
}

// rollRandom draws a uniformly-random record, stages it as the draft and
// presents the action keyboard.
func (m *Machine) rollRandom(ctx context.Context, userID int64, sess *session.Session) error {
	rec, err := m.names.Random(ctx)
	if err != nil {
		return m.fail(ctx, userID, "names.random", err)
	}
	if rec == nil {
		return m.send.Send(ctx, userID, render.NothingFound, kbRandom)
	}

	sess.Draft = &session.Draft{ID: rec.ID, Name: rec.Name}
	m.sessions.Set(userID, sess)

	return m.send.Send(ctx, userID, render.NameLine(rec.Name, rec.Note)+"\n\n\n"+msgChooseAction, kbRandom)
}
