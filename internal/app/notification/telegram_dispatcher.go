package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

// TelegramDispatcher pushes intents to the user's Telegram chat.
type TelegramDispatcher struct {
	bot        *tgbotapi.BotAPI
	repository Repository
	logger     logger.LoggerInterface
}

func NewTelegramDispatcher(bot *tgbotapi.BotAPI, repository Repository, logger logger.LoggerInterface) *TelegramDispatcher {
	return &TelegramDispatcher{
		bot:        bot,
		repository: repository,
		logger:     logger,
	}
}

func (d *TelegramDispatcher) Dispatch(ctx context.Context, intent Intent) (int, error) {
	chatId, err := d.repository.ChatIdForUser(ctx, intent.UserId)
	if err != nil {
		d.logger.Println("Unable to resolve chat id for user", intent.UserId, ":", err)
		return 0, err
	}

	text := helpers.ConcatStrings("*", intent.Title, "*\n\n", intent.Message)

	message := tgbotapi.NewMessage(chatId, text)
	message.ParseMode = tgbotapi.ModeMarkdown

	sent, err := d.bot.Send(message)
	if err != nil {
		d.logger.Println("Unable to send message to chat", chatId, ":", err)
		return 0, err
	}

	return sent.MessageID, nil
}
