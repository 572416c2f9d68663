package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"clientbot/internal/models"
)

const accessDenied = "❌ Доступ запрещён"

// isAdmin checks the single configured administrator identity.
func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.adminID
}

// handleAdminCommand opens the admin panel for /admin.
func (b *Bot) handleAdminCommand(message *tgbotapi.Message) {
	if !b.isAdmin(message.From.ID) {
		b.sendText(message.Chat.ID, accessDenied)
		return
	}
	b.sendAdminMenu(message.Chat.ID)
}

func (b *Bot) sendAdminMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "⚙️ <b>АДМИН-ПАНЕЛЬ</b>\n\nВыбери раздел:")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Портфолио", "admin_portfolio"),
			tgbotapi.NewInlineKeyboardButtonData("❓ FAQ", "admin_faq"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📞 Контакты", "admin_contacts"),
			tgbotapi.NewInlineKeyboardButtonData("👤 О себе", "admin_about"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Отзывы", "admin_reviews"),
			tgbotapi.NewInlineKeyboardButtonData("💾 Бекапы", "admin_backups"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "admin_stats"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Закрыть", "admin_close"),
		),
	)
	b.sendMessage(msg)
}

// handleAdminCallback routes every admin panel button press. The
// identity check happens before anything else; unauthorized callers
// get the same fixed rejection as /admin.
func (b *Bot) handleAdminCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	if !b.isAdmin(userID) {
		b.sendText(chatID, accessDenied)
		return
	}

	data := query.Data
	switch {
	case data == "admin_menu":
		b.sendAdminMenu(chatID)
	case data == "admin_close":
		b.sendText(chatID, "Админ-панель закрыта.")
	case data == "admin_stats":
		b.sendAdminStats(chatID)

	case data == "admin_portfolio":
		b.sendPortfolioMenu(chatID)
	case data == "acase_add":
		b.startFlow(chatID, userID, flowAdminCaseAdd)
	case strings.HasPrefix(data, "acasef_"):
		// acasef_<field>_<id>
		if field, id, ok := splitFieldID(strings.TrimPrefix(data, "acasef_")); ok {
			b.startFlowWith(chatID, userID, flowAdminCaseEdit, map[string]string{
				"case_id": id, "field": field,
			})
		}
	case strings.HasPrefix(data, "acasedelyes_"):
		b.deleteCase(chatID, strings.TrimPrefix(data, "acasedelyes_"))
	case strings.HasPrefix(data, "acasedel_"):
		b.confirmDeleteCase(chatID, strings.TrimPrefix(data, "acasedel_"))
	case strings.HasPrefix(data, "acase_"):
		b.sendCaseMenu(chatID, strings.TrimPrefix(data, "acase_"))

	case data == "admin_faq":
		b.sendFAQMenu(chatID)
	case data == "afaq_add":
		b.startFlow(chatID, userID, flowAdminFAQAdd)
	case strings.HasPrefix(data, "afaqf_"):
		if field, id, ok := splitFieldID(strings.TrimPrefix(data, "afaqf_")); ok {
			b.startFlowWith(chatID, userID, flowAdminFAQEdit, map[string]string{
				"faq_id": id, "field": field,
			})
		}
	case strings.HasPrefix(data, "afaqdelyes_"):
		b.deleteFAQ(chatID, strings.TrimPrefix(data, "afaqdelyes_"))
	case strings.HasPrefix(data, "afaqdel_"):
		b.confirmDeleteFAQ(chatID, strings.TrimPrefix(data, "afaqdel_"))
	case strings.HasPrefix(data, "afaq_"):
		b.sendFAQItemMenu(chatID, strings.TrimPrefix(data, "afaq_"))

	case data == "admin_contacts":
		b.sendContactsMenu(chatID)
	case strings.HasPrefix(data, "acontact_"):
		b.startFlowWith(chatID, userID, flowAdminContactEdit, map[string]string{
			"field": strings.TrimPrefix(data, "acontact_"),
		})

	case data == "admin_about":
		b.sendAboutMenu(chatID)
	case data == "aabout_edit":
		b.startFlow(chatID, userID, flowAdminAboutEdit)

	case data == "admin_reviews":
		b.sendReviewQueue(chatID)
	case strings.HasPrefix(data, "arev_ok_"):
		b.moderateReview(chatID, strings.TrimPrefix(data, "arev_ok_"), models.ReviewApproved)
	case strings.HasPrefix(data, "arev_no_"):
		b.moderateReview(chatID, strings.TrimPrefix(data, "arev_no_"), models.ReviewRejected)

	case data == "admin_backups":
		b.sendBackupMenu(chatID)
	case data == "abk_create":
		b.createBackup(chatID)
	case strings.HasPrefix(data, "abk_restore_"):
		b.restoreBackup(chatID, strings.TrimPrefix(data, "abk_restore_"))
	case strings.HasPrefix(data, "abk_delete_"):
		b.deleteBackup(chatID, strings.TrimPrefix(data, "abk_delete_"))
	}
}

// splitFieldID parses "<field>_<id>" where the id may itself contain
// underscores (case_3, faq_12).
func splitFieldID(s string) (field, id string, ok bool) {
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (b *Bot) sendAdminStats(chatID int64) {
	stats, err := b.content.ContentStats()
	if err != nil {
		b.logger.Error("Failed to read content stats", zap.Error(err))
		b.sendText(chatID, "❌ Не удалось получить статистику")
		return
	}
	b.sendHTML(chatID, fmt.Sprintf(
		"📊 <b>Статистика</b>\n\n"+
			"Кейсов в портфолио: %d\n"+
			"Вопросов в FAQ: %d\n"+
			"Отзывов на модерации: %d",
		stats.PortfolioCount, stats.FAQCount, len(b.reviews.Pending())))
}

// ---- portfolio ----

func (b *Bot) sendPortfolioMenu(chatID int64) {
	cases, err := b.content.Portfolio()
	if err != nil {
		b.logger.Error("Failed to load portfolio", zap.Error(err))
		b.sendText(chatID, "❌ Не удалось загрузить портфолио")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range cases {
		title := c.Title
		if len([]rune(title)) > 30 {
			title = string([]rune(title)[:30]) + "..."
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ "+title, "acase_"+c.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить кейс", "acase_add"),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_menu")))

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📦 <b>ПОРТФОЛИО</b>\n\nВсего кейсов: %d\n\nВыбери кейс для редактирования:", len(cases)))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}

func (b *Bot) sendCaseMenu(chatID int64, caseID string) {
	c, err := b.content.Case(caseID)
	if err != nil {
		b.sendText(chatID, "❌ Кейс не найден")
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✏️ <b>Редактирование кейса</b>\n\n<b>Название:</b> %s\n<b>Краткое описание:</b> %s\n\nВыбери что редактировать:",
		c.Title, c.Desc))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Название", "acasef_title_"+caseID)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Короткое описание", "acasef_desc_"+caseID)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Полное описание", "acasef_details_"+caseID)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Удалить кейс", "acasedel_"+caseID)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_portfolio")),
	)
	b.sendMessage(msg)
}

func (b *Bot) confirmDeleteCase(chatID int64, caseID string) {
	c, err := b.content.Case(caseID)
	if err != nil {
		b.sendText(chatID, "❌ Кейс не найден")
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ <b>Удалить кейс?</b>\n\n%s", c.Title))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", "acasedelyes_"+caseID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "acase_"+caseID),
		),
	)
	b.sendMessage(msg)
}

func (b *Bot) deleteCase(chatID int64, caseID string) {
	if err := b.content.DeleteCase(caseID); err != nil {
		b.logger.Error("Failed to delete portfolio case", zap.Error(err), zap.String("case_id", caseID))
		b.sendText(chatID, "❌ Ошибка при удалении")
		return
	}
	b.sendText(chatID, "✅ Кейс удалён")
}

// ---- FAQ ----

func (b *Bot) sendFAQMenu(chatID int64) {
	faq, err := b.content.FAQ()
	if err != nil {
		b.logger.Error("Failed to load FAQ", zap.Error(err))
		b.sendText(chatID, "❌ Не удалось загрузить FAQ")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range faq {
		q := item.Question
		if len([]rune(q)) > 30 {
			q = string([]rune(q)[:30]) + "..."
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ "+q, "afaq_"+item.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить вопрос", "afaq_add"),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_menu")))

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"❓ <b>FAQ</b>\n\nВсего вопросов: %d\n\nВыбери вопрос для редактирования:", len(faq)))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}

func (b *Bot) sendFAQItemMenu(chatID int64, faqID string) {
	faq, err := b.content.FAQ()
	if err != nil {
		b.sendText(chatID, "❌ Не удалось загрузить FAQ")
		return
	}
	for _, item := range faq {
		if item.ID != faqID {
			continue
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"✏️ <b>Редактирование FAQ</b>\n\n<b>Q:</b> %s\n<b>A:</b> %s", item.Question, item.Answer))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📝 Вопрос", "afaqf_q_"+faqID),
				tgbotapi.NewInlineKeyboardButtonData("📝 Ответ", "afaqf_a_"+faqID),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗑️ Удалить", "afaqdel_"+faqID),
				tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_faq"),
			),
		)
		b.sendMessage(msg)
		return
	}
	b.sendText(chatID, "❌ Вопрос не найден")
}

func (b *Bot) confirmDeleteFAQ(chatID int64, faqID string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ Удалить вопрос из FAQ?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", "afaqdelyes_"+faqID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "afaq_"+faqID),
		),
	)
	b.sendMessage(msg)
}

func (b *Bot) deleteFAQ(chatID int64, faqID string) {
	if err := b.content.DeleteFAQ(faqID); err != nil {
		b.logger.Error("Failed to delete FAQ entry", zap.Error(err), zap.String("faq_id", faqID))
		b.sendText(chatID, "❌ Ошибка при удалении")
		return
	}
	b.sendText(chatID, "✅ Вопрос удалён")
}

// ---- contacts / about ----

func (b *Bot) sendContactsMenu(chatID int64) {
	contacts, err := b.content.Contacts()
	if err != nil {
		b.logger.Error("Failed to load contacts", zap.Error(err))
		b.sendText(chatID, "❌ Не удалось загрузить контакты")
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📞 <b>КОНТАКТЫ</b>\n\nTelegram: %s\nEmail: %s\nТелефон: %s\nWhatsApp: %s\n\nВыбери поле для редактирования:",
		contacts.Telegram, contacts.Email, contacts.Phone, contacts.WhatsApp))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Telegram", "acontact_telegram"),
			tgbotapi.NewInlineKeyboardButtonData("Email", "acontact_email"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Телефон", "acontact_phone"),
			tgbotapi.NewInlineKeyboardButtonData("WhatsApp", "acontact_whatsapp"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_menu"),
		),
	)
	b.sendMessage(msg)
}

func (b *Bot) sendAboutMenu(chatID int64) {
	about, err := b.content.About()
	if err != nil {
		b.logger.Error("Failed to load about text", zap.Error(err))
		b.sendText(chatID, "❌ Не удалось загрузить текст")
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("👤 <b>О СЕБЕ</b>\n\nТекущий текст:\n%s", about))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить текст", "aabout_edit"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_menu"),
		),
	)
	b.sendMessage(msg)
}

// ---- review moderation ----

func (b *Bot) sendReviewQueue(chatID int64) {
	pending := b.reviews.Pending()
	if len(pending) == 0 {
		b.sendText(chatID, "Нет отзывов на модерации.")
		return
	}

	for _, r := range pending {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("<b>%s</b>: %s", r.Author, r.Text))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", fmt.Sprintf("arev_ok_%d", r.ID)),
				tgbotapi.NewInlineKeyboardButtonData("🗑️ Отклонить", fmt.Sprintf("arev_no_%d", r.ID)),
			),
		)
		b.sendMessage(msg)
	}
}

func (b *Bot) moderateReview(chatID int64, idStr, status string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return
	}
	if err := b.reviews.SetReviewStatus(id, status); err != nil {
		b.sendText(chatID, "❌ Отзыв не найден")
		return
	}
	if status == models.ReviewApproved {
		b.sendText(chatID, "✅ Отзыв одобрен")
	} else {
		b.sendText(chatID, "🗑️ Отзыв отклонён")
	}
}
