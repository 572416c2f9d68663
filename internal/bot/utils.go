package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"clientbot/internal/flow"
)

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message",
			zap.Error(err), zap.Int64("chat_id", msg.ChatID))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	b.sendMessage(msg)
}

// sendPrompt renders a flow prompt, attaching an inline keyboard when
// the prompt carries options.
func (b *Bot) sendPrompt(chatID int64, prompt flow.Prompt) {
	msg := tgbotapi.NewMessage(chatID, prompt.Text)
	if len(prompt.Options) > 0 {
		msg.ReplyMarkup = optionsKeyboard(prompt.Options)
	}
	b.sendMessage(msg)
}

func optionsKeyboard(options [][]flow.Option) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range options {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, opt := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) sendDocument(chatID int64, fileID string) {
	if b.api == nil {
		return // For testing
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Warn("Failed to send document",
			zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
