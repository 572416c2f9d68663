package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clientbot/internal/flow"
	"clientbot/internal/models"
)

// orderFlow is the order questionnaire: ten linear questions, a bonus
// step entered only when the user has accrued bonus, and a final
// confirm step that persists the ticket.
func (b *Bot) orderFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowOrder,
		CancelText: "Заявка отменена.",
		Steps: []flow.Step{
			{
				State: "fio", Field: "fio",
				Prompt:   textPrompt("Для заказа бота заполните, пожалуйста, небольшую анкету.\n\nВаши ФИО:"),
				Validate: nonEmpty,
			},
			{
				State: "contact", Field: "contact",
				Prompt:   textPrompt("Ваши контактные данные (телефон, email, Telegram):"),
				Validate: nonEmpty,
			},
			{
				State: "idea", Field: "idea",
				Prompt:   textPrompt("Опишите вашу идею для бота:"),
				Validate: nonEmpty,
			},
			{
				State: "type_bot", Field: "type_bot",
				Prompt:   textPrompt("Выберите тип бота (чат-бот, магазин, интеграция и т.д.):"),
				Validate: nonEmpty,
			},
			{
				State: "budget", Field: "budget",
				Prompt:   textPrompt("Укажите желаемый бюджет:"),
				Validate: nonEmpty,
			},
			{
				State: "deadline", Field: "deadline",
				Prompt:   textPrompt("Укажите желаемые сроки:"),
				Validate: nonEmpty,
			},
			{
				State: "options", Field: "options",
				Prompt:   textPrompt("Выберите тариф или опции (опишите, если есть):"),
				Validate: nonEmpty,
			},
			{
				State: "settings", Field: "settings",
				Prompt:   textPrompt("Есть ли особые настройки или пожелания?"),
				Validate: nonEmpty,
			},
			{
				State: "file", Field: "file",
				Prompt:   textPrompt("Прикрепите файл (если есть) или напишите 'нет':"),
				Validate: fileOrNone,
			},
			{
				State: "hosting", Field: "hosting",
				Prompt:   textPrompt("Где будет размещён бот?\n1. Ваш сервер\n2. Мой сервер (аренда)"),
				Validate: nonEmpty,
				Next:     b.afterHosting,
			},
			{
				State: "use_bonus", Field: "use_bonus",
				Prompt: func(s *flow.Session) flow.Prompt {
					return flow.Prompt{Text: fmt.Sprintf(
						"У вас есть бонусы: %s руб.\nИспользовать бонусы для скидки? (да/нет)",
						s.Answer("bonus_amount"))}
				},
				Validate: yesNo,
				Next: func(_ *flow.Session, _ string) string {
					return "confirm"
				},
			},
			{
				State:    "confirm",
				Prompt:   orderSummaryPrompt,
				Validate: confirmOrCancel,
				Next: func(_ *flow.Session, value string) string {
					if value == "отмена" {
						return flow.StateCancelled
					}
					return flow.StateConfirmed
				},
			},
		},
		OnComplete: b.completeOrder,
	}
}

// fileOrNone accepts an attached document or the literal "нет".
func fileOrNone(_ *flow.Session, in flow.Input) (string, error) {
	if in.FileID != "" {
		return in.FileID, nil
	}
	if strings.ToLower(strings.TrimSpace(in.Text)) == "нет" {
		return "", nil
	}
	return "", errors.New("Прикрепите файл документом или напишите 'нет'.")
}

func confirmOrCancel(_ *flow.Session, in flow.Input) (string, error) {
	switch strings.ToLower(strings.TrimSpace(in.Text)) {
	case "подтверждаю":
		return "подтверждаю", nil
	case "отмена":
		return "отмена", nil
	default:
		return "", errors.New("Напишите 'Подтверждаю' для отправки заявки или 'Отмена'.")
	}
}

// afterHosting branches into the bonus question only when the user has
// something to spend.
func (b *Bot) afterHosting(s *flow.Session, _ string) string {
	balance := b.bonuses.Balance(s.UserID)
	if balance > 0 {
		s.SetAnswer("bonus_amount", strconv.Itoa(balance))
		return "use_bonus"
	}
	s.SetAnswer("use_bonus", "нет")
	s.SetAnswer("bonus_amount", "0")
	return "confirm"
}

// orderSummaryPrompt renders the confirmation summary from the exact
// answers that will be persisted, in fixed field order.
func orderSummaryPrompt(s *flow.Session) flow.Prompt {
	text := orderSummary(s)
	if s.Answer("use_bonus") == "да" {
		text += fmt.Sprintf("Применена скидка: %s руб.\n", s.Answer("bonus_amount"))
	}
	text += "\nЕсли всё верно, напишите 'Подтверждаю'. Для отмены — 'Отмена'."
	return flow.Prompt{Text: text}
}

func orderSummary(s *flow.Session) string {
	file := "Нет"
	if s.Answer("file") != "" {
		file = "Есть"
	}
	return fmt.Sprintf(
		"Проверьте заявку:\n"+
			"ФИО: %s\n"+
			"Контакты: %s\n"+
			"Идея: %s\n"+
			"Тип бота: %s\n"+
			"Бюджет: %s\n"+
			"Сроки: %s\n"+
			"Тариф/опции: %s\n"+
			"Настройки: %s\n"+
			"Файл: %s\n"+
			"Хостинг: %s\n",
		s.Answer("fio"), s.Answer("contact"), s.Answer("idea"), s.Answer("type_bot"),
		s.Answer("budget"), s.Answer("deadline"), s.Answer("options"), s.Answer("settings"),
		file, s.Answer("hosting"))
}

// completeOrder debits the bonus and appends the ticket as one unit:
// if the append fails, the debit is credited back and the session
// survives for a retry.
func (b *Bot) completeOrder(s *flow.Session) (flow.Prompt, error) {
	orderID := uuid.NewString()[:8]

	bonusSpent := 0
	if s.Answer("use_bonus") == "да" {
		amount, _ := strconv.Atoi(s.Answer("bonus_amount"))
		if amount > 0 {
			if err := b.bonuses.Debit(s.UserID, amount); err != nil {
				// The balance shrank since the bonus step; the order
				// proceeds without the discount.
				b.logger.Warn("Bonus debit rejected",
					zap.Error(err),
					zap.Int64("user_id", s.UserID),
					zap.Int("amount", amount))
			} else {
				bonusSpent = amount
			}
		}
	}

	ticket := models.Ticket{
		OrderID:    orderID,
		UserID:     s.UserID,
		FIO:        s.Answer("fio"),
		Contact:    s.Answer("contact"),
		Idea:       s.Answer("idea"),
		TypeBot:    s.Answer("type_bot"),
		Budget:     s.Answer("budget"),
		Deadline:   s.Answer("deadline"),
		Options:    s.Answer("options"),
		Settings:   s.Answer("settings"),
		FileID:     s.Answer("file"),
		Hosting:    s.Answer("hosting"),
		BonusUsed:  bonusSpent > 0,
		BonusSpent: bonusSpent,
		Status:     models.StatusNew,
		CreatedAt:  time.Now(),
	}

	if err := b.tickets.AppendTicket(ticket); err != nil {
		if bonusSpent > 0 {
			b.bonuses.Credit(s.UserID, bonusSpent)
		}
		return flow.Prompt{}, fmt.Errorf("append ticket: %w", err)
	}

	b.notifyAdmin(ticket)

	return flow.Prompt{Text: fmt.Sprintf(
		"Спасибо! Ваша заявка принята. Ваш номер заказа: %s\n"+
			"Вы можете проверить статус через меню 'Статус заказа'.", orderID)}, nil
}

// notifyAdmin forwards the new ticket to the administrator, including
// the attached document when present.
func (b *Bot) notifyAdmin(ticket models.Ticket) {
	file := "Нет"
	if ticket.FileID != "" {
		file = "Есть"
	}
	text := fmt.Sprintf(
		"Новая заявка на бота:\n"+
			"ID заказа: %s\n"+
			"ФИО: %s\n"+
			"Контакты: %s\n"+
			"Идея: %s\n"+
			"Тип бота: %s\n"+
			"Бюджет: %s\n"+
			"Сроки: %s\n"+
			"Тариф/опции: %s\n"+
			"Настройки: %s\n"+
			"Файл: %s\n"+
			"Хостинг: %s\n",
		ticket.OrderID, ticket.FIO, ticket.Contact, ticket.Idea, ticket.TypeBot,
		ticket.Budget, ticket.Deadline, ticket.Options, ticket.Settings, file, ticket.Hosting)
	if ticket.BonusUsed {
		text += fmt.Sprintf("Использовано бонусов: %d руб.\n", ticket.BonusSpent)
	}

	b.sendText(b.adminID, text)
	if ticket.FileID != "" {
		b.sendDocument(b.adminID, ticket.FileID)
	}
}
