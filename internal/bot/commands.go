package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleStart greets the user and processes referral links of the form
// /start ref<user_id>. A valid referral credits the referrer a fixed
// bonus; self-referrals are ignored.
func (b *Bot) handleStart(message *tgbotapi.Message) {
	userID := message.From.ID
	args := message.CommandArguments()

	if strings.HasPrefix(args, "ref") {
		if refID, err := strconv.ParseInt(strings.TrimPrefix(args, "ref"), 10, 64); err == nil && refID != userID {
			b.bonuses.AddReferral(refID, userID)
			b.bonuses.Credit(refID, b.referralBonus)
			b.logger.Info("Referral recorded",
				zap.Int64("referrer_id", refID), zap.Int64("referred_id", userID))
		}
	}

	msg := tgbotapi.NewMessage(message.Chat.ID,
		"👋 Привет! Я — ваш личный бот для заказов.\nВыберите действие в меню.")
	msg.ReplyMarkup = mainMenu()
	b.sendMessage(msg)
}

// handlePortfolio shows every case with a details button.
func (b *Bot) handlePortfolio(message *tgbotapi.Message) {
	cases, err := b.content.Portfolio()
	if err != nil {
		b.logger.Error("Failed to load portfolio", zap.Error(err))
		b.sendText(message.Chat.ID, "Не удалось загрузить портфолио.")
		return
	}
	if len(cases) == 0 {
		b.sendText(message.Chat.ID, "Портфолио пока пусто.")
		return
	}

	for _, c := range cases {
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("<b>%s</b>\n%s", c.Title, c.Desc))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Посмотреть кейс", "case_"+c.ID),
			),
		)
		b.sendMessage(msg)
	}
}

func (b *Bot) handleCaseDetails(chatID int64, caseID string) {
	c, err := b.content.Case(caseID)
	if err != nil {
		b.sendText(chatID, "Кейс не найден.")
		return
	}
	b.sendHTML(chatID, fmt.Sprintf("<b>%s</b>\n%s", c.Title, c.Details))
}

func (b *Bot) handleFAQ(message *tgbotapi.Message) {
	faq, err := b.content.FAQ()
	if err != nil {
		b.logger.Error("Failed to load FAQ", zap.Error(err))
		b.sendText(message.Chat.ID, "Не удалось загрузить FAQ.")
		return
	}

	var text strings.Builder
	text.WriteString("<b>FAQ — Часто задаваемые вопросы:</b>\n")
	for _, item := range faq {
		text.WriteString(fmt.Sprintf("\n<b>Q:</b> %s\n<b>A:</b> %s\n", item.Question, item.Answer))
	}
	b.sendHTML(message.Chat.ID, text.String())
}

func (b *Bot) handleAbout(message *tgbotapi.Message) {
	about, err := b.content.About()
	if err != nil {
		b.logger.Error("Failed to load about text", zap.Error(err))
		b.sendText(message.Chat.ID, "Не удалось загрузить информацию.")
		return
	}
	b.sendHTML(message.Chat.ID, about)
}

func (b *Bot) handleContacts(message *tgbotapi.Message) {
	contacts, err := b.content.Contacts()
	if err != nil {
		b.logger.Error("Failed to load contacts", zap.Error(err))
		b.sendText(message.Chat.ID, "Не удалось загрузить контакты.")
		return
	}

	text := fmt.Sprintf("Для связи:\nTelegram: %s\nEmail: %s\nТелефон: %s",
		contacts.Telegram, contacts.Email, contacts.Phone)
	if contacts.WhatsApp != "" {
		text += "\nWhatsApp: " + contacts.WhatsApp
	}
	b.sendText(message.Chat.ID, text)
}

// handleReviews shows approved reviews only.
func (b *Bot) handleReviews(message *tgbotapi.Message) {
	reviews := b.reviews.Approved()

	var text strings.Builder
	text.WriteString("Отзывы клиентов:\n")
	for _, r := range reviews {
		text.WriteString(fmt.Sprintf("\n<b>%s</b>: %s\n", r.Author, r.Text))
	}
	text.WriteString("\nЕсли хотите оставить отзыв, напишите 'Оставить отзыв'.")
	b.sendHTML(message.Chat.ID, text.String())
}

// handleBonuses shows the referral link and the current balance.
func (b *Bot) handleBonuses(message *tgbotapi.Message) {
	userID := message.From.ID

	username := "bot"
	if b.api != nil {
		username = b.api.Self.UserName
	}

	text := fmt.Sprintf(
		"Ваша реферальная ссылка:\nhttps://t.me/%s?start=ref%d\n"+
			"Приглашено пользователей: %d\n"+
			"Ваш бонус: %d руб.\n"+
			"\nПригласите друга — получите бонус за каждый оплаченный заказ!",
		username, userID, len(b.bonuses.Referrals(userID)), b.bonuses.Balance(userID))
	b.sendText(message.Chat.ID, text)
}
