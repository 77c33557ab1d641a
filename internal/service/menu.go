// Package service provides business logic implementations.
package service

import (
	"context"
	"fmt"

	"telegram-menu-bot/internal/menu"
	"telegram-menu-bot/internal/model"
)

// MenuStore is the persistence surface the menu service needs.
// *repository.MenuRepository satisfies it.
type MenuStore interface {
	TablesExist(ctx context.Context) (bool, error)
	CreateMenuTables(ctx context.Context) error
	InsertCategory(ctx context.Context, name string) (*model.Category, error)
	InsertDish(ctx context.Context, categoryID int64, name, price, description string) (*model.Dish, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Dishes(ctx context.Context, categoryID int64) ([]model.Dish, error)
	CategoryIDByName(ctx context.Context, name string) (int64, error)
	DishByID(ctx context.Context, id int64) (*model.Dish, error)
}

// SelectionStore is the persistence surface for the selection log.
// *repository.SelectionRepository satisfies it.
type SelectionStore interface {
	EnsureTable(ctx context.Context) error
	RecordSelection(ctx context.Context, dishName, username, message string) error
	TopDishes(ctx context.Context, limit int) ([]model.DishStat, error)
	TopUsers(ctx context.Context, limit int) ([]model.UserStat, error)
	RecentMessages(ctx context.Context, limit int) ([]model.StoredMessage, error)
}

// MenuService handles menu management and browsing.
type MenuService struct {
	menuStore      MenuStore
	selectionStore SelectionStore
}

// NewMenuService creates a new MenuService instance.
func NewMenuService(menuStore MenuStore, selectionStore SelectionStore) *MenuService {
	return &MenuService{
		menuStore:      menuStore,
		selectionStore: selectionStore,
	}
}

// MenuReady reports whether the menu tables have been created.
func (s *MenuService) MenuReady(ctx context.Context) (bool, error) {
	return s.menuStore.TablesExist(ctx)
}

// CreateMenu creates the category and dish tables together.
func (s *MenuService) CreateMenu(ctx context.Context) error {
	return s.menuStore.CreateMenuTables(ctx)
}

// AddCategory parses an /add_category message and persists the category.
// Validation failures come back as menu.ErrMissingName or
// menu.ErrNameTooLong with no state change.
func (s *MenuService) AddCategory(ctx context.Context, rawText string) (*model.Category, error) {
	name, err := menu.ParseCategoryCommand(rawText)
	if err != nil {
		return nil, err
	}

	return s.menuStore.InsertCategory(ctx, name)
}

// AddDish parses an /add_dish message, resolves the category name to its
// id and persists the dish. An unresolvable category aborts the insert
// with repository.ErrCategoryNotFound.
func (s *MenuService) AddDish(ctx context.Context, rawText string) (*model.Dish, error) {
	input, err := menu.ParseDishCommand(rawText)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.menuStore.CategoryIDByName(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	return s.menuStore.InsertDish(ctx, categoryID, input.Name, input.Price, input.Description)
}

// Categories retrieves all menu categories in insertion order.
func (s *MenuService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.menuStore.Categories(ctx)
}

// Dishes retrieves the dishes of one category in insertion order.
func (s *MenuService) Dishes(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	return s.menuStore.Dishes(ctx, categoryID)
}

// Dish retrieves a single dish by id.
func (s *MenuService) Dish(ctx context.Context, id int64) (*model.Dish, error) {
	return s.menuStore.DishByID(ctx, id)
}

// SelectDish loads a dish and appends the pick to the selection log.
// The dish is returned for display even if it carries no description.
func (s *MenuService) SelectDish(ctx context.Context, dishID int64, username string) (*model.Dish, error) {
	dish, err := s.menuStore.DishByID(ctx, dishID)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s selected %s", username, dish.Name)
	if err := s.selectionStore.RecordSelection(ctx, dish.Name, username, message); err != nil {
		return nil, fmt.Errorf("failed to log selection: %w", err)
	}

	return dish, nil
}
