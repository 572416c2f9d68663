package bot

import (
	"fmt"
	"strings"
	"time"

	"clientbot/internal/flow"
	"clientbot/internal/models"
	"clientbot/internal/pricing"
)

// calcFlow estimates the price of a bot in three questions. The quote
// is shown both with and without the user's accrued bonus.
func (b *Bot) calcFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowCalc,
		CancelText: "Расчёт отменён.",
		Steps: []flow.Step{
			{
				State: "calc_type", Field: "type_bot",
				Prompt:   textPrompt("Выберите тип бота: магазин/обычный"),
				Validate: nonEmpty,
			},
			{
				State: "calc_complexity", Field: "complexity",
				Prompt:   textPrompt("Сложность: обычный/сложный"),
				Validate: nonEmpty,
			},
			{
				State: "calc_hosting", Field: "hosting",
				Prompt:   textPrompt("Где будет размещён бот? мой сервер/ваш сервер"),
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			typeBot := s.Answer("type_bot")
			complexity := s.Answer("complexity")
			hosting := s.Answer("hosting")

			bonus := b.bonuses.Balance(s.UserID)
			price := pricing.Price(typeBot, complexity, hosting, 0)

			if bonus > 0 {
				discounted := pricing.Price(typeBot, complexity, hosting, bonus)
				return flow.Prompt{Text: fmt.Sprintf(
					"Примерная стоимость: %d руб.\n"+
						"С учетом ваших бонусов (%d руб.): %d руб.",
					price, bonus, discounted)}, nil
			}
			return flow.Prompt{Text: fmt.Sprintf("Примерная стоимость: %d руб.", price)}, nil
		},
	}
}

// statusFlow looks up a ticket status by order id.
func (b *Bot) statusFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowStatus,
		CancelText: "Действие отменено.",
		Steps: []flow.Step{
			{
				State: "status_order_id", Field: "order_id",
				Prompt:   textPrompt("Введите номер вашего заказа для проверки статуса:"),
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			orderID := strings.TrimSpace(s.Answer("order_id"))

			status := "не найдено"
			if ticket, err := b.tickets.TicketByID(orderID); err == nil {
				status = ticket.Status
			}
			return flow.Prompt{Text: fmt.Sprintf("Статус заказа %s: %s", orderID, status)}, nil
		},
	}
}

// reviewFlow collects one review text; the review enters the
// moderation queue and becomes visible only after approval.
func (b *Bot) reviewFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowReview,
		CancelText: "Действие отменено.",
		Steps: []flow.Step{
			{
				State: "review_text", Field: "text",
				Prompt:   textPrompt("Напишите ваш отзыв:"),
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			author := s.Answer("author")
			if author == "" {
				author = fmt.Sprintf("user %d", s.UserID)
			}

			b.reviews.AddReview(models.Review{
				Author: author,
				Rating: 5,
				Text:   s.Answer("text"),
				UserID: s.UserID,
				Date:   time.Now(),
				Status: models.ReviewPending,
			})
			return flow.Prompt{Text: "Спасибо за ваш отзыв! Он появится в разделе после модерации."}, nil
		},
	}
}
