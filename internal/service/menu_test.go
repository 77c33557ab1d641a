package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-menu-bot/internal/menu"
	"telegram-menu-bot/internal/model"
	"telegram-menu-bot/internal/repository"
)

// fakeMenuStore is an in-memory MenuStore.
type fakeMenuStore struct {
	tablesExist bool
	categories  []model.Category
	dishes      []model.Dish
	nextID      int64
}

func newFakeMenuStore() *fakeMenuStore {
	return &fakeMenuStore{nextID: 1}
}

func (f *fakeMenuStore) TablesExist(ctx context.Context) (bool, error) {
	return f.tablesExist, nil
}

func (f *fakeMenuStore) CreateMenuTables(ctx context.Context) error {
	f.tablesExist = true
	return nil
}

func (f *fakeMenuStore) InsertCategory(ctx context.Context, name string) (*model.Category, error) {
	category := model.Category{ID: f.nextID, Name: name}
	f.nextID++
	f.categories = append(f.categories, category)
	return &category, nil
}

func (f *fakeMenuStore) InsertDish(ctx context.Context, categoryID int64, name, price, description string) (*model.Dish, error) {
	dish := model.Dish{
		ID:          f.nextID,
		CategoryID:  categoryID,
		Name:        name,
		Price:       price,
		Description: description,
	}
	f.nextID++
	f.dishes = append(f.dishes, dish)
	return &dish, nil
}

func (f *fakeMenuStore) Categories(ctx context.Context) ([]model.Category, error) {
	return f.categories, nil
}

func (f *fakeMenuStore) Dishes(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	var dishes []model.Dish
	for _, dish := range f.dishes {
		if dish.CategoryID == categoryID {
			dishes = append(dishes, dish)
		}
	}
	return dishes, nil
}

func (f *fakeMenuStore) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	for _, category := range f.categories {
		if category.Name == name {
			return category.ID, nil
		}
	}
	return 0, repository.ErrCategoryNotFound
}

func (f *fakeMenuStore) DishByID(ctx context.Context, id int64) (*model.Dish, error) {
	for _, dish := range f.dishes {
		if dish.ID == id {
			d := dish
			return &d, nil
		}
	}
	return nil, repository.ErrDishNotFound
}

// fakeSelectionStore is an in-memory SelectionStore.
type fakeSelectionStore struct {
	selections []model.Selection
	topDishes  []model.DishStat
	topUsers   []model.UserStat
	recent     []model.StoredMessage
}

func (f *fakeSelectionStore) EnsureTable(ctx context.Context) error { return nil }

func (f *fakeSelectionStore) RecordSelection(ctx context.Context, dishName, username, message string) error {
	f.selections = append(f.selections, model.Selection{
		DishName: dishName,
		Username: username,
		Message:  message,
	})
	return nil
}

func (f *fakeSelectionStore) TopDishes(ctx context.Context, limit int) ([]model.DishStat, error) {
	return f.topDishes, nil
}

func (f *fakeSelectionStore) TopUsers(ctx context.Context, limit int) ([]model.UserStat, error) {
	return f.topUsers, nil
}

func (f *fakeSelectionStore) RecentMessages(ctx context.Context, limit int) ([]model.StoredMessage, error) {
	return f.recent, nil
}

func TestMenuService_AddCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("valid name is inserted", func(t *testing.T) {
		store := newFakeMenuStore()
		svc := NewMenuService(store, &fakeSelectionStore{})

		category, err := svc.AddCategory(ctx, "/add_category Hot drinks")
		require.NoError(t, err)
		assert.Equal(t, "Hot drinks", category.Name)
		require.Len(t, store.categories, 1)
	})

	t.Run("missing name aborts without insert", func(t *testing.T) {
		store := newFakeMenuStore()
		svc := NewMenuService(store, &fakeSelectionStore{})

		_, err := svc.AddCategory(ctx, "/add_category")
		assert.ErrorIs(t, err, menu.ErrMissingName)
		assert.Empty(t, store.categories)
	})

	t.Run("overlong name aborts without insert", func(t *testing.T) {
		store := newFakeMenuStore()
		svc := NewMenuService(store, &fakeSelectionStore{})

		_, err := svc.AddCategory(ctx, "/add_category "+strings.Repeat("a", 61))
		assert.ErrorIs(t, err, menu.ErrNameTooLong)
		assert.Empty(t, store.categories)
	})
}

func TestMenuService_AddDish(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves category and inserts", func(t *testing.T) {
		store := newFakeMenuStore()
		svc := NewMenuService(store, &fakeSelectionStore{})

		_, err := svc.AddCategory(ctx, "/add_category Soups")
		require.NoError(t, err)

		dish, err := svc.AddDish(ctx, "/add_dish Soups Chicken_soup 12,5 Served_hot")
		require.NoError(t, err)
		assert.Equal(t, int64(1), dish.CategoryID)
		assert.Equal(t, "Chicken soup", dish.Name)
		assert.Equal(t, "12.5", dish.Price) // comma normalized before storage
		assert.Equal(t, "Served hot", dish.Description)
	})

	t.Run("unknown category aborts without insert", func(t *testing.T) {
		store := newFakeMenuStore()
		svc := NewMenuService(store, &fakeSelectionStore{})

		_, err := svc.AddDish(ctx, "/add_dish Soups Borscht 12.5")
		assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
		assert.Empty(t, store.dishes)
	})

	t.Run("invalid price aborts without insert", func(t *testing.T) {
		store := newFakeMenuStore()
		svc := NewMenuService(store, &fakeSelectionStore{})

		_, err := svc.AddCategory(ctx, "/add_category Soups")
		require.NoError(t, err)

		_, err = svc.AddDish(ctx, "/add_dish Soups Borscht free")
		assert.ErrorIs(t, err, menu.ErrInvalidPrice)
		assert.Empty(t, store.dishes)
	})
}

func TestMenuService_CreateMenu(t *testing.T) {
	ctx := context.Background()
	store := newFakeMenuStore()
	svc := NewMenuService(store, &fakeSelectionStore{})

	ready, err := svc.MenuReady(ctx)
	require.NoError(t, err)
	assert.False(t, ready)

	require.NoError(t, svc.CreateMenu(ctx))

	ready, err = svc.MenuReady(ctx)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestMenuService_SelectDish(t *testing.T) {
	ctx := context.Background()
	store := newFakeMenuStore()
	selections := &fakeSelectionStore{}
	svc := NewMenuService(store, selections)

	_, err := svc.AddCategory(ctx, "/add_category Soups")
	require.NoError(t, err)
	added, err := svc.AddDish(ctx, "/add_dish Soups Borscht 12.5")
	require.NoError(t, err)

	dish, err := svc.SelectDish(ctx, added.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Borscht", dish.Name)

	require.Len(t, selections.selections, 1)
	assert.Equal(t, "Borscht", selections.selections[0].DishName)
	assert.Equal(t, "alice", selections.selections[0].Username)
	assert.Equal(t, "alice selected Borscht", selections.selections[0].Message)
}

func TestMenuService_SelectDishUnknown(t *testing.T) {
	ctx := context.Background()
	selections := &fakeSelectionStore{}
	svc := NewMenuService(newFakeMenuStore(), selections)

	_, err := svc.SelectDish(ctx, 99, "alice")
	assert.ErrorIs(t, err, repository.ErrDishNotFound)
	assert.Empty(t, selections.selections)
}
