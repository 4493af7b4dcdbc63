package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/culinai/chef/internal/db"
	"github.com/culinai/chef/internal/i18n"
	"github.com/jackc/pgx/v5/pgtype"
)

// Queries is the subset of *db.Queries used here.
type Queries interface {
	InsertRecipeHistory(ctx context.Context, arg db.InsertRecipeHistoryParams) error
	ListRecentRecipeHistory(ctx context.Context, arg db.ListRecentRecipeHistoryParams) ([]db.RecipeHistory, error)
}

var _ Queries = (*db.Queries)(nil)

// PostgresRemote stores history in the recipe_history table.
type PostgresRemote struct {
	q Queries
}

func NewPostgresRemote(q Queries) *PostgresRemote {
	return &PostgresRemote{q: q}
}

func parseUUID(s string) (pgtype.UUID, error) {
	var u pgtype.UUID
	if err := u.Scan(s); err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return u, nil
}

func (r *PostgresRemote) Insert(ctx context.Context, userID string, item Item) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return err
	}
	id, err := parseUUID(item.ID)
	if err != nil {
		return err
	}
	recipes, err := json.Marshal(item.Recipes)
	if err != nil {
		return err
	}

	return r.q.InsertRecipeHistory(ctx, db.InsertRecipeHistoryParams{
		ID:           id,
		UserID:       uid,
		Language:     string(item.Language),
		SummaryTitle: item.SummaryTitle,
		Recipes:      recipes,
		CreatedAt:    pgtype.Timestamptz{Time: item.Time(), Valid: true},
	})
}

func (r *PostgresRemote) Recent(ctx context.Context, userID string, limit int) ([]Item, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.ListRecentRecipeHistory(ctx, db.ListRecentRecipeHistoryParams{UserID: uid, Limit: int32(limit)})
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item := Item{
			ID:           row.ID.String(),
			Timestamp:    row.CreatedAt.Time.UnixMilli(),
			Language:     i18n.Language(row.Language),
			SummaryTitle: row.SummaryTitle,
		}
		if err := json.Unmarshal(row.Recipes, &item.Recipes); err != nil {
			return nil, fmt.Errorf("decoding recipes of %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}
