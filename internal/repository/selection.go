package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"telegram-menu-bot/internal/model"
)

// SelectionRepository handles the append-only log of dish selections and
// the aggregate queries backing the admin reports.
type SelectionRepository struct {
	pool *pgxpool.Pool
}

// NewSelectionRepository creates a new SelectionRepository instance.
func NewSelectionRepository(pool *pgxpool.Pool) *SelectionRepository {
	return &SelectionRepository{pool: pool}
}

// EnsureTable creates the selection log table if it is missing. Unlike the
// menu tables it exists for the whole process lifetime, so it is created at
// startup rather than by an admin action.
func (r *SelectionRepository) EnsureTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS selection_dishes (
			id BIGSERIAL PRIMARY KEY,
			dish_name TEXT NOT NULL,
			username TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_selection_dishes_created ON selection_dishes(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create selection table: %w", err)
	}

	return nil
}

// RecordSelection appends one dish pick to the log.
func (r *SelectionRepository) RecordSelection(ctx context.Context, dishName, username, message string) error {
	const query = `
		INSERT INTO selection_dishes (dish_name, username, message)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, dishName, username, message)
	if err != nil {
		return fmt.Errorf("failed to record selection: %w", err)
	}

	return nil
}

// TopDishes retrieves the N most selected dishes, most popular first.
func (r *SelectionRepository) TopDishes(ctx context.Context, limit int) ([]model.DishStat, error) {
	const query = `
		SELECT dish_name, COUNT(*) AS count
		FROM selection_dishes
		GROUP BY dish_name
		ORDER BY count DESC, dish_name
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top dishes: %w", err)
	}
	defer rows.Close()

	var stats []model.DishStat
	for rows.Next() {
		var stat model.DishStat
		if err := rows.Scan(&stat.Name, &stat.Count); err != nil {
			return nil, fmt.Errorf("failed to scan dish stat: %w", err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dish stats: %w", err)
	}

	return stats, nil
}

// TopUsers retrieves the N most active users, most active first.
func (r *SelectionRepository) TopUsers(ctx context.Context, limit int) ([]model.UserStat, error) {
	const query = `
		SELECT username, COUNT(*) AS count
		FROM selection_dishes
		GROUP BY username
		ORDER BY count DESC, username
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}
	defer rows.Close()

	var stats []model.UserStat
	for rows.Next() {
		var stat model.UserStat
		if err := rows.Scan(&stat.Username, &stat.Count); err != nil {
			return nil, fmt.Errorf("failed to scan user stat: %w", err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user stats: %w", err)
	}

	return stats, nil
}

// RecentMessages retrieves the N most recent raw user messages, newest first.
func (r *SelectionRepository) RecentMessages(ctx context.Context, limit int) ([]model.StoredMessage, error) {
	const query = `
		SELECT message
		FROM selection_dishes
		WHERE message <> ''
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent messages: %w", err)
	}
	defer rows.Close()

	var messages []model.StoredMessage
	for rows.Next() {
		var msg model.StoredMessage
		if err := rows.Scan(&msg.Text); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
