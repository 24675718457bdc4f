// Package storage implements the postgres repositories for name records
// and per-user favorites.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m3rciful/namebot/bot/paging"
	"github.com/m3rciful/namebot/bot/query"
	"github.com/m3rciful/namebot/core/logger"
)

// Name is a directory record. The bot never mutates these rows.
type Name struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Note      string    `db:"note"`
	Category  string    `db:"category"`
	Gender    string    `db:"gender"`
	Origin    string    `db:"origin"`
	CreatedAt time.Time `db:"created_at"`
}

// NameRepo reads the names directory.
type NameRepo struct {
	db *sqlx.DB
}

// NewNameRepo wraps the shared connection pool.
func NewNameRepo(db *sqlx.DB) *NameRepo {
	return &NameRepo{db: db}
}

// whereClause renders a predicate into SQL starting at argument $1.
// An empty predicate yields an empty clause.
func whereClause(p query.Predicate) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(p.Genders) == 1 {
		conds = append(conds, "gender = "+arg(p.Genders[0]))
	}
	if len(p.Origins) > 0 {
		conds = append(conds, "origin = ANY("+arg(pq.Array(p.Origins))+")")
	}
	if len(p.Categories) > 0 {
		conds = append(conds, "category = ANY("+arg(pq.Array(p.Categories))+")")
	}
	if len(p.ExcludeCategories) > 0 {
		conds = append(conds, "NOT (category = ANY("+arg(pq.Array(p.ExcludeCategories))+"))")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// CountMatching returns the number of records matching the predicate.
func (r *NameRepo) CountMatching(ctx context.Context, p query.Predicate) (int, error) {
	where, args := whereClause(p)

	var total int
	start := time.Now()
	err := r.db.GetContext(ctx, &total, "SELECT count(*) FROM names"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("count names: %w", err)
	}
	logger.SVCNames.LogAttrs(ctx, slog.LevelDebug, "names.count",
		slog.Int("total", total),
		slog.Duration("duration", logger.Took(start)),
	)
	return total, nil
}

// ListMatching returns one window of matching records ordered by name,
// so successive offsets never repeat or skip rows.
func (r *NameRepo) ListMatching(ctx context.Context, p query.Predicate, offset, limit int) ([]Name, error) {
	where, args := whereClause(p)
	q := fmt.Sprintf("SELECT * FROM names%s ORDER BY name OFFSET $%d LIMIT $%d", where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	var names []Name
	start := time.Now()
	if err := r.db.SelectContext(ctx, &names, q, args...); err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	logger.SVCNames.LogAttrs(ctx, slog.LevelDebug, "names.list",
		slog.Int("offset", offset),
		slog.Int("limit", limit),
		slog.Int("rows", len(names)),
		slog.Duration("duration", logger.Took(start)),
	)
	return names, nil
}

// GetByExactName returns the record with the given name, or nil when absent.
func (r *NameRepo) GetByExactName(ctx context.Context, name string) (*Name, error) {
	var n Name
	err := r.db.GetContext(ctx, &n, "SELECT * FROM names WHERE name = $1 LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get name: %w", err)
	}
	return &n, nil
}

// Random draws one uniformly-random record from the whole directory.
func (r *NameRepo) Random(ctx context.Context) (*Name, error) {
	total, err := r.CountMatching(ctx, query.Predicate{})
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	var n Name
	offset := paging.RandomOffset(total, 1)
	err = r.db.GetContext(ctx, &n, "SELECT * FROM names ORDER BY id OFFSET $1 LIMIT 1", offset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("random name: %w", err)
	}
	return &n, nil
}
