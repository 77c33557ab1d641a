// Package handler provides Telegram bot command and callback handlers.
// Every handler returns the message it sent so the dispatch layer can
// track it as the chat's last bot message.
package handler

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"telegram-menu-bot/internal/menu"
	"telegram-menu-bot/internal/service"
)

// send delivers one message to the event's chat and returns it.
func send(c tele.Context, text string, opts ...interface{}) (*tele.Message, error) {
	return c.Bot().Send(c.Chat(), text, opts...)
}

// senderName returns the display name of the event's sender.
func senderName(c tele.Context) string {
	sender := c.Sender()
	if sender == nil {
		return ""
	}
	name := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	if name == "" {
		name = sender.Username
	}
	return name
}

// MenuHandler handles the user-facing browsing surface: the start screen,
// the category list, dish lists and dish selection.
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// Start handles /start and greets the sender with the start buttons.
func (h *MenuHandler) Start(c tele.Context) (*tele.Message, error) {
	greeting := "Hello, choose an action:"
	if name := senderName(c); name != "" {
		greeting = fmt.Sprintf("Hello, %s, choose an action:", name)
	}
	return send(c, greeting, menu.StartKeyboard())
}

// BackToStart handles the back_to_start callback.
func (h *MenuHandler) BackToStart(c tele.Context) (*tele.Message, error) {
	return send(c, "Choose an action:", menu.StartKeyboard())
}

// Menu handles the menu and back_to_menu callbacks. When no categories
// exist yet the handler substitutes a plain notice instead of building a
// keyboard.
func (h *MenuHandler) Menu(c tele.Context) (*tele.Message, error) {
	ctx := context.Background()

	ready, err := h.menuService.MenuReady(ctx)
	if err != nil {
		return nil, err
	}
	if !ready {
		return send(c, "The menu has not been created yet.")
	}

	categories, err := h.menuService.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return send(c, "The menu has no categories yet.")
	}

	return send(c, "Menu categories:", menu.MenuKeyboard(categories))
}

// DishList handles a category_<id> callback and shows the dishes of that
// category.
func (h *MenuHandler) DishList(c tele.Context, categoryID int64) (*tele.Message, error) {
	ctx := context.Background()

	dishes, err := h.menuService.Dishes(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(dishes) == 0 {
		return send(c, "This category has no dishes yet.", menu.DishListKeyboard(nil))
	}

	return send(c, "Choose a dish:", menu.DishListKeyboard(dishes))
}

// SelectDish handles a dish_<id> callback: the pick is appended to the
// selection log and the dish card is shown with a back button.
func (h *MenuHandler) SelectDish(c tele.Context, dishID int64) (*tele.Message, error) {
	ctx := context.Background()

	username := ""
	if sender := c.Sender(); sender != nil {
		username = sender.Username
		if username == "" {
			username = senderName(c)
		}
	}

	dish, err := h.menuService.SelectDish(ctx, dishID, username)
	if err != nil {
		return nil, err
	}

	return send(c, menu.FormatDish(dish), tele.ModeHTML, menu.BackToDishesKeyboard(dish.CategoryID))
}
