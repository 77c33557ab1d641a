package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/menu"
	"telegram-menu-bot/internal/repository"
	"telegram-menu-bot/internal/service"
)

// Prompt texts shown when the admin picks an action from the panel.
const (
	addCategoryPrompt = "To add a category, send a message of the form:\n" +
		"<b>/add_category Category name</b>\n\n" +
		"The name may contain spaces and must be at most 60 characters long."

	addDishPrompt = "To add a dish, send a message of the form:\n" +
		"<b>/add_dish category name price description</b>\n\n" +
		"The description is optional. Use underscores inside a field instead of spaces, for example:\n" +
		"<b>/add_dish Soups Chicken_soup 12.5 Served_hot</b>\n\n" +
		"Available categories:\n"
)

// AdminHandler handles the admin panel: menu creation, content commands
// and reports. Access is granted only to the configured admin chat.
type AdminHandler struct {
	cfg           *config.Config
	menuService   *service.MenuService
	reportService *service.ReportService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg *config.Config, menuService *service.MenuService, reportService *service.ReportService) *AdminHandler {
	return &AdminHandler{
		cfg:           cfg,
		menuService:   menuService,
		reportService: reportService,
	}
}

// Admin handles the admin callback. A non-admin chat gets a generic
// refusal that reveals nothing about the admin identity.
func (h *AdminHandler) Admin(c tele.Context) (*tele.Message, error) {
	ctx := context.Background()
	chat := c.Chat()

	if chat == nil || !h.cfg.IsAdmin(chat.ID) {
		if chat != nil {
			log.Warn().Int64("chat_id", chat.ID).Msg("Non-admin chat requested admin panel")
		}
		return send(c, "You do not have access to the admin panel.")
	}

	ready, err := h.menuService.MenuReady(ctx)
	if err != nil {
		return nil, err
	}

	return send(c, "Admin panel, choose an action:", menu.AdminKeyboard(ready))
}

// CreateMenu handles the create_menu callback and creates the category
// and dish tables together.
func (h *AdminHandler) CreateMenu(c tele.Context) (*tele.Message, error) {
	ctx := context.Background()

	if err := h.menuService.CreateMenu(ctx); err != nil {
		return nil, err
	}

	log.Info().Msg("Menu tables created")
	return send(c, "Empty menu created.", menu.AdminKeyboard(true))
}

// AddCategoryPrompt handles the add_category callback and explains the
// /add_category command format.
func (h *AdminHandler) AddCategoryPrompt(c tele.Context) (*tele.Message, error) {
	return send(c, addCategoryPrompt, tele.ModeHTML, menu.AdminKeyboard(true))
}

// AddDishPrompt handles the add_dish callback. The prompt lists the
// currently available categories so the admin knows what to reference.
func (h *AdminHandler) AddDishPrompt(c tele.Context) (*tele.Message, error) {
	ctx := context.Background()

	categories, err := h.menuService.Categories(ctx)
	if err != nil {
		return nil, err
	}

	categoriesText := "No categories available"
	if len(categories) > 0 {
		categoriesText = menu.FormatCategories(categories)
	}

	text := addDishPrompt + "<i>" + categoriesText + "</i>"
	return send(c, text, tele.ModeHTML, menu.AdminKeyboard(true))
}

// AddCategory handles the /add_category command. Validation failures are
// surfaced as plain messages with no state change.
func (h *AdminHandler) AddCategory(c tele.Context) (*tele.Message, error) {
	ctx := context.Background()

	category, err := h.menuService.AddCategory(ctx, c.Text())
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrMissingName):
			return send(c, "You did not provide a category name.")
		case errors.Is(err, menu.ErrNameTooLong):
			return send(c, "The category name must be at most 60 characters long.")
		}
		return nil, err
	}

	log.Info().Str("category", category.Name).Msg("Category added")
	return send(c, "Category created!", menu.AdminKeyboard(true))
}

// AddDish handles the /add_dish command.
func (h *AdminHandler) AddDish(c tele.Context) (*tele.Message, error) {
	ctx := context.Background()

	dish, err := h.menuService.AddDish(ctx, c.Text())
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrWrongArity):
			return send(c, "A dish needs a category, a name, a price and optionally a description.")
		case errors.Is(err, menu.ErrInvalidPrice):
			return send(c, "The price must be a positive number.")
		case errors.Is(err, repository.ErrCategoryNotFound):
			return send(c, "This category does not exist in the menu.")
		}
		return nil, err
	}

	log.Info().Str("dish", dish.Name).Int64("category_id", dish.CategoryID).Msg("Dish added")
	return send(c, "Dish added to the category!", menu.AdminKeyboard(true))
}

// TopDishes handles the top_dishes_report callback.
func (h *AdminHandler) TopDishes(c tele.Context) (*tele.Message, error) {
	report, err := h.reportService.TopDishes(context.Background())
	if err != nil {
		return nil, err
	}
	return send(c, report, tele.ModeHTML, menu.AdminKeyboard(true))
}

// TopUsers handles the top_users_report callback.
func (h *AdminHandler) TopUsers(c tele.Context) (*tele.Message, error) {
	report, err := h.reportService.TopUsers(context.Background())
	if err != nil {
		return nil, err
	}
	return send(c, report, tele.ModeHTML, menu.AdminKeyboard(true))
}

// RecentMessages handles the last_messages_report callback.
func (h *AdminHandler) RecentMessages(c tele.Context) (*tele.Message, error) {
	report, err := h.reportService.RecentMessages(context.Background())
	if err != nil {
		return nil, err
	}
	return send(c, report, tele.ModeHTML, menu.AdminKeyboard(true))
}
