// Package model defines the data models for the Telegram menu bot.
package model

// Category represents a named grouping of dishes in the menu.
// Names are limited to 60 characters, enforced before insertion.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Dish represents a priced, described menu item belonging to one category.
// Price is kept as a validated decimal string; the store persists it as text.
type Dish struct {
	ID          int64  `db:"id"`
	CategoryID  int64  `db:"category_id"`
	Name        string `db:"name"`
	Price       string `db:"price"`
	Description string `db:"description"`
}

// Selection represents a single dish pick by a user, appended to the
// selection log whenever a dish button is pressed.
type Selection struct {
	ID       int64  `db:"id"`
	DishName string `db:"dish_name"`
	Username string `db:"username"`
	Message  string `db:"message"`
}

// DishStat is one row of the "most popular dishes" report.
type DishStat struct {
	Name  string `db:"dish_name"`
	Count int64  `db:"count"`
}

// UserStat is one row of the "most active users" report.
type UserStat struct {
	Username string `db:"username"`
	Count    int64  `db:"count"`
}

// StoredMessage is one row of the "recent messages" report.
type StoredMessage struct {
	Text string `db:"message"`
}
