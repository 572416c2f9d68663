package bot

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"clientbot/internal/flow"
)

// handleMessage processes a single inbound message.
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.sendText(message.Chat.ID, "Произошла ошибка при обработке запроса. Попробуйте ещё раз.")
		}
	}()

	userID := message.From.ID

	if message.IsCommand() {
		// Any command interrupts an ongoing conversation. This is the
		// explicit force-reset path; plain text never resets.
		interrupted := b.engine.Cancel(userID)

		switch message.Command() {
		case "start":
			b.handleStart(message)
		case "admin":
			b.handleAdminCommand(message)
		case "cancel":
			if interrupted {
				b.sendText(message.Chat.ID, "Действие отменено.")
			} else {
				b.sendText(message.Chat.ID, "Нет активного действия.")
			}
		default:
			b.sendText(message.Chat.ID, "Неизвестная команда. Используйте /start.")
		}
		return
	}

	// An active conversation consumes all non-command input.
	if _, _, ok := b.engine.Active(userID); ok {
		b.submitToFlow(message.Chat.ID, userID, flow.Input{
			Text:   message.Text,
			FileID: documentID(message),
		})
		return
	}

	b.handleMenu(message)
}

// handleMenu routes main-menu button presses.
func (b *Bot) handleMenu(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	switch message.Text {
	case btnOrder:
		b.startFlow(chatID, userID, flowOrder)
	case btnPortfolio:
		b.handlePortfolio(message)
	case btnFAQ:
		b.handleFAQ(message)
	case btnSupport:
		b.sendText(chatID, "Напишите ваш вопрос, и я отвечу лично.")
	case btnCalc:
		b.startFlow(chatID, userID, flowCalc)
	case btnStatus:
		b.startFlow(chatID, userID, flowStatus)
	case btnAbout:
		b.handleAbout(message)
	case btnContacts:
		b.handleContacts(message)
	case btnReviews:
		b.handleReviews(message)
	case btnBonuses:
		b.handleBonuses(message)
	default:
		if strings.EqualFold(strings.TrimSpace(message.Text), "оставить отзыв") {
			b.startFlowWith(chatID, userID, flowReview, map[string]string{
				"author": message.From.FirstName,
			})
			return
		}
		msg := tgbotapi.NewMessage(chatID, "Выберите действие в меню.")
		msg.ReplyMarkup = mainMenu()
		b.sendMessage(msg)
	}
}

// startFlow begins a conversation and delivers its first prompt.
func (b *Bot) startFlow(chatID, userID int64, flowID string) {
	b.startFlowWith(chatID, userID, flowID, nil)
}

func (b *Bot) startFlowWith(chatID, userID int64, flowID string, seed map[string]string) {
	prompt, err := b.engine.StartWith(flowID, userID, seed)
	if err != nil {
		if errors.Is(err, flow.ErrFlowActive) {
			b.sendText(chatID, "Сначала завершите текущее действие или отправьте /cancel.")
			return
		}
		b.logger.Error("Failed to start flow",
			zap.Error(err), zap.Int64("user_id", userID), zap.String("flow_id", flowID))
		b.sendText(chatID, "Произошла ошибка. Попробуйте ещё раз.")
		return
	}
	b.sendPrompt(chatID, prompt)
}

// submitToFlow feeds input into the user's conversation and delivers
// the resulting prompt.
func (b *Bot) submitToFlow(chatID, userID int64, in flow.Input) {
	result, err := b.engine.Submit(userID, in)
	if err != nil {
		if errors.Is(err, flow.ErrNoSession) {
			msg := tgbotapi.NewMessage(chatID, "Выберите действие в меню.")
			msg.ReplyMarkup = mainMenu()
			b.sendMessage(msg)
			return
		}
		// Persistence failure inside OnComplete; the session survives
		// and the user may retry.
		b.sendText(chatID, "Не удалось сохранить данные. Попробуйте ещё раз.")
		return
	}
	b.sendPrompt(chatID, result.Prompt)
}

// handleCallbackQuery processes inline keyboard button presses.
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	// Answer the callback query to remove the loading state.
	if b.api != nil {
		b.api.Request(tgbotapi.NewCallback(query.ID, ""))
	}

	data := query.Data
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	switch {
	case strings.HasPrefix(data, "admin_") ||
		strings.HasPrefix(data, "acase") ||
		strings.HasPrefix(data, "afaq") ||
		strings.HasPrefix(data, "acontact_") ||
		strings.HasPrefix(data, "aabout_") ||
		strings.HasPrefix(data, "arev_") ||
		strings.HasPrefix(data, "abk_"):
		b.handleAdminCallback(query)
	default:
		// An active conversation consumes every non-admin callback,
		// including lingering content buttons from older messages.
		if _, _, ok := b.engine.Active(userID); ok {
			b.submitToFlow(chatID, userID, flow.Input{Text: data, Data: data})
			return
		}
		if strings.HasPrefix(data, "case_") {
			b.handleCaseDetails(chatID, strings.TrimPrefix(data, "case_"))
		}
	}
}

func documentID(message *tgbotapi.Message) string {
	if message.Document == nil {
		return ""
	}
	return message.Document.FileID
}
