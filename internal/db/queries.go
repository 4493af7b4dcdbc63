package db

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

//go:embed schema.sql
var Schema string

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// EnsureSchema creates the tables if they do not exist yet.
func (q *Queries) EnsureSchema(ctx context.Context) error {
	_, err := q.db.Exec(ctx, Schema)
	return err
}

type RecipeHistory struct {
	ID           pgtype.UUID        `json:"id"`
	UserID       pgtype.UUID        `json:"user_id"`
	Language     string             `json:"language"`
	SummaryTitle string             `json:"summary_title"`
	Recipes      []byte             `json:"recipes"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

const insertRecipeHistory = `
INSERT INTO recipe_history (id, user_id, language, summary_title, recipes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

type InsertRecipeHistoryParams struct {
	ID           pgtype.UUID        `json:"id"`
	UserID       pgtype.UUID        `json:"user_id"`
	Language     string             `json:"language"`
	SummaryTitle string             `json:"summary_title"`
	Recipes      []byte             `json:"recipes"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertRecipeHistory(ctx context.Context, arg InsertRecipeHistoryParams) error {
	_, err := q.db.Exec(ctx, insertRecipeHistory,
		arg.ID,
		arg.UserID,
		arg.Language,
		arg.SummaryTitle,
		arg.Recipes,
		arg.CreatedAt,
	)
	return err
}

const listRecentRecipeHistory = `
SELECT id, user_id, language, summary_title, recipes, created_at
FROM recipe_history
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

type ListRecentRecipeHistoryParams struct {
	UserID pgtype.UUID `json:"user_id"`
	Limit  int32       `json:"limit"`
}

func (q *Queries) ListRecentRecipeHistory(ctx context.Context, arg ListRecentRecipeHistoryParams) ([]RecipeHistory, error) {
	rows, err := q.db.Query(ctx, listRecentRecipeHistory, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RecipeHistory
	for rows.Next() {
		var i RecipeHistory
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Language,
			&i.SummaryTitle,
			&i.Recipes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
