// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"telegram-menu-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDishNotFound     = errors.New("dish not found")
)

// Table names used by the menu schema. Identifiers are never built from
// user input; these constants are the allow-list.
const (
	tableCategories = "menu_categories"
	tableDishes     = "dishes"
)

// MenuRepository handles category and dish persistence.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository creates a new MenuRepository instance.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// TablesExist reports whether the menu tables have been created.
// Categories and dishes are created and dropped together, so probing the
// categories table is enough.
func (r *MenuRepository) TablesExist(ctx context.Context) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, tableCategories).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check menu tables: %w", err)
	}

	return exists, nil
}

// CreateMenuTables creates the categories and dishes tables. Both are
// created in one call so the schema never holds one without the other.
func (r *MenuRepository) CreateMenuTables(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS menu_categories (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(60) NOT NULL
		);
		CREATE TABLE IF NOT EXISTS dishes (
			id BIGSERIAL PRIMARY KEY,
			category_id BIGINT NOT NULL REFERENCES menu_categories(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create menu tables: %w", err)
	}

	return nil
}

// DropMenuTables removes both menu tables.
func (r *MenuRepository) DropMenuTables(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		DROP TABLE IF EXISTS dishes;
		DROP TABLE IF EXISTS menu_categories CASCADE;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop menu tables: %w", err)
	}

	return nil
}

// InsertCategory adds a new category and returns it with its generated id.
func (r *MenuRepository) InsertCategory(ctx context.Context, name string) (*model.Category, error) {
	const query = `
		INSERT INTO menu_categories (name)
		VALUES ($1)
		RETURNING id, name
	`

	var category model.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &category, nil
}

// InsertDish adds a new dish under an existing category.
func (r *MenuRepository) InsertDish(ctx context.Context, categoryID int64, name, price, description string) (*model.Dish, error) {
	const query = `
		INSERT INTO dishes (category_id, name, price, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, category_id, name, price, description
	`

	var dish model.Dish
	err := r.pool.QueryRow(ctx, query, categoryID, name, price, description).Scan(
		&dish.ID,
		&dish.CategoryID,
		&dish.Name,
		&dish.Price,
		&dish.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert dish: %w", err)
	}

	return &dish, nil
}

// Categories retrieves all categories in insertion order.
func (r *MenuRepository) Categories(ctx context.Context) ([]model.Category, error) {
	const query = `
		SELECT id, name
		FROM menu_categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Dishes retrieves all dishes of one category in insertion order.
func (r *MenuRepository) Dishes(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	const query = `
		SELECT id, category_id, name, price, description
		FROM dishes
		WHERE category_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dishes: %w", err)
	}
	defer rows.Close()

	var dishes []model.Dish
	for rows.Next() {
		var dish model.Dish
		err := rows.Scan(
			&dish.ID,
			&dish.CategoryID,
			&dish.Name,
			&dish.Price,
			&dish.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}

// CategoryIDByName resolves a category name to its id.
// Returns ErrCategoryNotFound if no category carries that name.
func (r *MenuRepository) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	const query = `
		SELECT id
		FROM menu_categories
		WHERE name = $1
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCategoryNotFound
		}
		return 0, fmt.Errorf("failed to resolve category: %w", err)
	}

	return id, nil
}

// DishByID retrieves a single dish.
// Returns ErrDishNotFound if the dish does not exist.
func (r *MenuRepository) DishByID(ctx context.Context, id int64) (*model.Dish, error) {
	const query = `
		SELECT id, category_id, name, price, description
		FROM dishes
		WHERE id = $1
	`

	var dish model.Dish
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&dish.ID,
		&dish.CategoryID,
		&dish.Name,
		&dish.Price,
		&dish.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	return &dish, nil
}
