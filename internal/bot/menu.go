package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Main menu button labels. Routing in handlers.go matches on these.
const (
	btnOrder     = "Заказать бота"
	btnPortfolio = "Портфолио"
	btnFAQ       = "FAQ"
	btnSupport   = "Чат поддержки"
	btnCalc      = "Калькулятор стоимости"
	btnStatus    = "Статус заказа"
	btnAbout     = "О компании"
	btnContacts  = "Связаться с разработчиком"
	btnReviews   = "Отзывы"
	btnBonuses   = "Бонусы и рефералы"
)

// mainMenu is the persistent reply keyboard shown to every customer.
func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnOrder),
			tgbotapi.NewKeyboardButton(btnPortfolio),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFAQ),
			tgbotapi.NewKeyboardButton(btnSupport),
			tgbotapi.NewKeyboardButton(btnCalc),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStatus),
			tgbotapi.NewKeyboardButton(btnAbout),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnContacts),
			tgbotapi.NewKeyboardButton(btnReviews),
			tgbotapi.NewKeyboardButton(btnBonuses),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
