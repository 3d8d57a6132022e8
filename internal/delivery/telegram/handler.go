package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/domain/entities"
)

// Printer produces formatted ayat.
type Printer interface {
	Print(ctx context.Context, sel entities.Selection) (*ayah.Result, error)
	Random(ctx context.Context) (*ayah.Result, error)
	Today(ctx context.Context) (*ayah.Result, error)
}

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Commands are registered with Telegram so clients can suggest them.
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start the bot"},
	{Command: "today", Description: "Ayah of the day"},
	{Command: "random", Description: "A random ayah"},
	{Command: "ayah", Description: "Print an ayah (usage: /ayah 2 255)"},
	{Command: "help", Description: "Help"},
}

type Handler struct {
	bot     Bot
	logger  *zap.Logger
	printer Printer
}

func NewHandler(bot Bot, logger *zap.Logger, printer Printer) *Handler {
	return &Handler{
		bot:     bot,
		logger:  logger,
		printer: printer,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Chat == nil {
		h.logger.Debug("update without message")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			_ = h.send(newPlainMessage(chatID, msgWelcome))

		case "help":
			_ = h.send(newPlainMessage(chatID, msgHelp))

		case "today":
			_ = h.withErrorHandling(h.todayHandler())(ctx, chatID)

		case "random":
			_ = h.withErrorHandling(h.randomHandler())(ctx, chatID)

		case "ayah":
			_ = h.withErrorHandling(h.ayahHandler(update.Message.CommandArguments()))(ctx, chatID)

		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	// Plain "2 255" works like /ayah 2 255.
	if len(strings.Fields(update.Message.Text)) == 2 {
		_ = h.withErrorHandling(h.ayahHandler(update.Message.Text))(ctx, chatID)
		return
	}
	_ = h.send(newPlainMessage(chatID, msgHelp))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
