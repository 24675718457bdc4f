package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/namebot/core/logger"
)

// Favorite associates a user with a chosen name.
type Favorite struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Name   string `db:"name"`
}

// FavoriteRepo manages per-user favorite names. Users are identified by
// their Telegram chat id; the backing user row is created on first use.
type FavoriteRepo struct {
	db *sqlx.DB
}

// NewFavoriteRepo wraps the shared connection pool.
func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// List returns the user's favorites in insertion order.
func (r *FavoriteRepo) List(ctx context.Context, chatID int64) ([]Favorite, error) {
	var favorites []Favorite
	err := r.db.SelectContext(ctx, &favorites,
		`SELECT f.id, f.user_id, f.name
		   FROM favorite_names f
		   JOIN users u ON u.id = f.user_id
		  WHERE u.chat_id = $1
		  ORDER BY f.id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Create stores a favorite, creating the user row if needed.
// Re-adding an existing favorite is a no-op.
func (r *FavoriteRepo) Create(ctx context.Context, chatID int64, name string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO users (chat_id) VALUES ($1) ON CONFLICT (chat_id) DO NOTHING`, chatID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorite_names (user_id, name)
		 SELECT id, $2 FROM users WHERE chat_id = $1
		 ON CONFLICT (user_id, name) DO NOTHING`, chatID, name)
	if err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil {
		logger.SVCFavorites.LogAttrs(ctx, slog.LevelDebug, "favorites.create",
			slog.Int64("chat_id", chatID),
			slog.Bool("inserted", rows > 0),
		)
	}
	return nil
}

// Delete removes the user's favorite with the given name, if present.
func (r *FavoriteRepo) Delete(ctx context.Context, chatID int64, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorite_names f
		  USING users u
		  WHERE f.user_id = u.id AND u.chat_id = $1 AND f.name = $2`, chatID, name)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
