package menu

import (
	"strconv"

	tele "gopkg.in/telebot.v3"

	"telegram-menu-bot/internal/model"
)

// Callback tags matched exactly by the dispatcher.
const (
	CallbackMenu         = "menu"
	CallbackAdmin        = "admin"
	CallbackCreateMenu   = "create_menu"
	CallbackAddCategory  = "add_category"
	CallbackAddDish      = "add_dish"
	CallbackBackToStart  = "back_to_start"
	CallbackBackToMenu   = "back_to_menu"
	CallbackTopDishes    = "top_dishes_report"
	CallbackTopUsers     = "top_users_report"
	CallbackLastMessages = "last_messages_report"
)

// Callback tag prefixes followed by a decimal id.
const (
	CallbackCategoryPrefix = "category_"
	CallbackDishPrefix     = "dish_"
)

// CategoryCallback builds the callback tag for one category button.
func CategoryCallback(categoryID int64) string {
	return CallbackCategoryPrefix + strconv.FormatInt(categoryID, 10)
}

// DishCallback builds the callback tag for one dish button.
func DishCallback(dishID int64) string {
	return CallbackDishPrefix + strconv.FormatInt(dishID, 10)
}

// StartKeyboard builds the two start-screen buttons.
func StartKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("Menu", CallbackMenu)),
		markup.Row(markup.Data("Admin panel", CallbackAdmin)),
	)
	return markup
}

// MenuKeyboard builds a Back button plus one button per category. It
// makes no emptiness decision: an empty category list yields only Back.
func MenuKeyboard(categories []model.Category) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	rows := []tele.Row{
		markup.Row(markup.Data("Back", CallbackBackToStart)),
	}
	for _, category := range categories {
		rows = append(rows, markup.Row(markup.Data(category.Name, CategoryCallback(category.ID))))
	}

	markup.Inline(rows...)
	return markup
}

// AdminKeyboard builds the admin panel. When the menu tables are absent
// the only action is creating them; once they exist the panel switches to
// content management and reports. The two states never mix.
func AdminKeyboard(tablesExist bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	rows := []tele.Row{
		markup.Row(markup.Data("Back", CallbackBackToStart)),
	}

	if !tablesExist {
		rows = append(rows, markup.Row(markup.Data("Create menu", CallbackCreateMenu)))
	} else {
		rows = append(rows,
			markup.Row(markup.Data("Add category", CallbackAddCategory)),
			markup.Row(markup.Data("Add dish to category", CallbackAddDish)),
			markup.Row(markup.Data("Top 3 most popular dishes", CallbackTopDishes)),
			markup.Row(markup.Data("Top 3 most active users", CallbackTopUsers)),
			markup.Row(markup.Data("Recent messages", CallbackLastMessages)),
		)
	}

	markup.Inline(rows...)
	return markup
}

// DishListKeyboard builds a back-to-menu button plus one button per dish.
func DishListKeyboard(dishes []model.Dish) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	rows := []tele.Row{
		markup.Row(markup.Data("Back", CallbackBackToMenu)),
	}
	for _, dish := range dishes {
		rows = append(rows, markup.Row(markup.Data(dish.Name, DishCallback(dish.ID))))
	}

	markup.Inline(rows...)
	return markup
}

// BackToDishesKeyboard builds the single button under a dish card that
// returns to the dish list of its category.
func BackToDishesKeyboard(categoryID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("Back", CategoryCallback(categoryID))),
	)
	return markup
}
