// Package bot wires the Telegram transport to the menu handlers and
// enforces the last-message rewrite discipline: on every handled event
// the previous bot message in that chat is deleted before the handler
// sends its response, so at most one bot message stays visible per chat.
package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/handler"
	"telegram-menu-bot/internal/menu"
	"telegram-menu-bot/internal/service"
)

// responseFunc is the shape of every menu bot handler: it sends exactly
// one message and returns it so the dispatcher can track it.
type responseFunc func(c tele.Context) (*tele.Message, error)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.Config
	sessions *SessionStore

	menuHandler  *handler.MenuHandler
	adminHandler *handler.AdminHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config        *config.Config
	MenuService   *service.MenuService
	ReportService *service.ReportService
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:      teleBot,
		cfg:      deps.Config,
		sessions: NewSessionStore(),
	}

	// Initialize handlers
	b.menuHandler = handler.NewMenuHandler(deps.MenuService)
	b.adminHandler = handler.NewAdminHandler(deps.Config, deps.MenuService, deps.ReportService)

	// Register middleware
	b.bot.Use(LoggingMiddleware())

	// Register handlers
	b.registerHandlers()

	return b, nil
}

// registerHandlers registers all command and callback handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.rewrite(b.menuHandler.Start))
	b.bot.Handle("/add_category", b.rewrite(b.adminHandler.AddCategory))
	b.bot.Handle("/add_dish", b.rewrite(b.adminHandler.AddDish))

	b.bot.Handle(tele.OnCallback, b.handleCallback)
}

// handleCallback routes callback tags to handlers. Unknown tags are a
// no-op.
func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data
	tag := strings.TrimPrefix(callback.Data, "\f")

	fn := b.route(tag)
	if fn == nil {
		log.Debug().Str("tag", tag).Msg("Unknown callback tag")
		return nil
	}

	return b.dispatch(c, fn)
}

// route maps a callback tag to its handler.
func (b *Bot) route(tag string) responseFunc {
	switch tag {
	case menu.CallbackMenu, menu.CallbackBackToMenu:
		return b.menuHandler.Menu
	case menu.CallbackBackToStart:
		return b.menuHandler.BackToStart
	case menu.CallbackAdmin:
		return b.adminHandler.Admin
	case menu.CallbackCreateMenu:
		return b.adminHandler.CreateMenu
	case menu.CallbackAddCategory:
		return b.adminHandler.AddCategoryPrompt
	case menu.CallbackAddDish:
		return b.adminHandler.AddDishPrompt
	case menu.CallbackTopDishes:
		return b.adminHandler.TopDishes
	case menu.CallbackTopUsers:
		return b.adminHandler.TopUsers
	case menu.CallbackLastMessages:
		return b.adminHandler.RecentMessages
	}

	if id, ok := tagID(tag, menu.CallbackCategoryPrefix); ok {
		return func(c tele.Context) (*tele.Message, error) {
			return b.menuHandler.DishList(c, id)
		}
	}
	if id, ok := tagID(tag, menu.CallbackDishPrefix); ok {
		return func(c tele.Context) (*tele.Message, error) {
			return b.menuHandler.SelectDish(c, id)
		}
	}

	return nil
}

// tagID extracts the decimal id following a callback tag prefix.
func tagID(tag, prefix string) (int64, bool) {
	if !strings.HasPrefix(tag, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(tag, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// rewrite adapts a responseFunc into a telebot handler with the
// delete-then-send discipline applied.
func (b *Bot) rewrite(fn responseFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.dispatch(c, fn)
	}
}

// dispatch runs one handler under the rewrite discipline: delete the
// chat's previous bot message, invoke the handler, then track the newly
// sent message. Handler failures and panics are contained here so one
// bad event never stops the process.
func (b *Bot) dispatch(c tele.Context, fn responseFunc) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	if callback := c.Callback(); callback != nil {
		_ = c.Respond(&tele.CallbackResponse{})
	}

	if last, ok := b.sessions.Last(chat.ID); ok {
		// Best effort: the message may already be gone.
		err := b.bot.Delete(&tele.Message{
			ID:   last.MessageID,
			Chat: &tele.Chat{ID: last.ChatID},
		})
		if err != nil {
			log.Debug().Err(err).Int64("chat_id", chat.ID).Msg("Failed to delete previous message")
		}
		b.sessions.Clear(chat.ID)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int64("chat_id", chat.ID).Msg("Recovered from panic in handler")
			b.sendFallback(c, chat.ID)
		}
	}()

	msg, err := fn(c)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chat.ID).Msg("Handler failed")
		b.sendFallback(c, chat.ID)
		return nil
	}

	b.sessions.Set(chat.ID, msg)
	return nil
}

// sendFallback delivers the generic failure message and keeps the
// session pointer coherent.
func (b *Bot) sendFallback(c tele.Context, chatID int64) {
	msg, err := b.bot.Send(c.Chat(), "Something went wrong, please try again.")
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send fallback message")
		return
	}
	b.sessions.Set(chatID, msg)
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
