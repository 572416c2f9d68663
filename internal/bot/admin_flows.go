package bot

import (
	"fmt"

	"clientbot/internal/flow"
)

// Admin flows run on the same engine as customer flows. Edit flows are
// seeded with the target entity id and field before the first prompt.

func (b *Bot) adminCaseAddFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowAdminCaseAdd,
		CancelText: "Добавление кейса отменено.",
		Steps: []flow.Step{
			{
				State: "case_add_title", Field: "title",
				Prompt:   textPrompt("➕ Отправь название нового кейса:"),
				Validate: nonEmpty,
			},
			{
				State: "case_add_desc", Field: "desc",
				Prompt:   textPrompt("📄 Теперь отправь краткое описание (1-2 строки):"),
				Validate: nonEmpty,
			},
			{
				State: "case_add_details", Field: "details",
				Prompt:   textPrompt("📋 Отправь полное описание кейса (может быть развёрнутым):"),
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			if _, err := b.content.AddCase(s.Answer("title"), s.Answer("desc"), s.Answer("details")); err != nil {
				return flow.Prompt{}, fmt.Errorf("add portfolio case: %w", err)
			}
			return flow.Prompt{Text: "✅ Кейс добавлен в портфолио!"}, nil
		},
	}
}

func (b *Bot) adminCaseEditFlow() *flow.Flow {
	prompts := map[string]string{
		"title":   "✏️ Отправь новое название для кейса:",
		"desc":    "✏️ Отправь новое краткое описание:",
		"details": "✏️ Отправь новое полное описание:",
	}
	return &flow.Flow{
		ID:         flowAdminCaseEdit,
		CancelText: "Редактирование отменено.",
		Steps: []flow.Step{
			{
				State: "case_edit_value", Field: "value",
				Prompt: func(s *flow.Session) flow.Prompt {
					return flow.Prompt{Text: prompts[s.Answer("field")]}
				},
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			var title, desc, details string
			switch s.Answer("field") {
			case "title":
				title = s.Answer("value")
			case "desc":
				desc = s.Answer("value")
			case "details":
				details = s.Answer("value")
			}
			if err := b.content.UpdateCase(s.Answer("case_id"), title, desc, details); err != nil {
				return flow.Prompt{}, fmt.Errorf("update portfolio case: %w", err)
			}
			return flow.Prompt{Text: "✅ Кейс обновлён!"}, nil
		},
	}
}

func (b *Bot) adminFAQAddFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowAdminFAQAdd,
		CancelText: "Добавление вопроса отменено.",
		Steps: []flow.Step{
			{
				State: "faq_add_question", Field: "question",
				Prompt:   textPrompt("➕ Отправь текст вопроса:"),
				Validate: nonEmpty,
			},
			{
				State: "faq_add_answer", Field: "answer",
				Prompt:   textPrompt("Теперь отправь ответ на вопрос:"),
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			if _, err := b.content.AddFAQ(s.Answer("question"), s.Answer("answer")); err != nil {
				return flow.Prompt{}, fmt.Errorf("add faq: %w", err)
			}
			return flow.Prompt{Text: "✅ Вопрос добавлен в FAQ!"}, nil
		},
	}
}

func (b *Bot) adminFAQEditFlow() *flow.Flow {
	prompts := map[string]string{
		"q": "✏️ Отправь новый текст вопроса:",
		"a": "✏️ Отправь новый текст ответа:",
	}
	return &flow.Flow{
		ID:         flowAdminFAQEdit,
		CancelText: "Редактирование отменено.",
		Steps: []flow.Step{
			{
				State: "faq_edit_value", Field: "value",
				Prompt: func(s *flow.Session) flow.Prompt {
					return flow.Prompt{Text: prompts[s.Answer("field")]}
				},
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			var question, answer string
			switch s.Answer("field") {
			case "q":
				question = s.Answer("value")
			case "a":
				answer = s.Answer("value")
			}
			if err := b.content.UpdateFAQ(s.Answer("faq_id"), question, answer); err != nil {
				return flow.Prompt{}, fmt.Errorf("update faq: %w", err)
			}
			return flow.Prompt{Text: "✅ FAQ обновлён!"}, nil
		},
	}
}

func (b *Bot) adminContactEditFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowAdminContactEdit,
		CancelText: "Редактирование отменено.",
		Steps: []flow.Step{
			{
				State: "contact_edit_value", Field: "value",
				Prompt: func(s *flow.Session) flow.Prompt {
					return flow.Prompt{Text: fmt.Sprintf("✏️ Отправь новое значение поля «%s»:", s.Answer("field"))}
				},
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			if err := b.content.UpdateContact(s.Answer("field"), s.Answer("value")); err != nil {
				return flow.Prompt{}, fmt.Errorf("update contacts: %w", err)
			}
			return flow.Prompt{Text: "✅ Контакты обновлены!"}, nil
		},
	}
}

func (b *Bot) adminAboutEditFlow() *flow.Flow {
	return &flow.Flow{
		ID:         flowAdminAboutEdit,
		CancelText: "Редактирование отменено.",
		Steps: []flow.Step{
			{
				State: "about_edit_text", Field: "text",
				Prompt:   textPrompt("✏️ Отправь новый текст раздела «О себе»:"),
				Validate: nonEmpty,
			},
		},
		OnComplete: func(s *flow.Session) (flow.Prompt, error) {
			if err := b.content.UpdateAbout(s.Answer("text")); err != nil {
				return flow.Prompt{}, fmt.Errorf("update about: %w", err)
			}
			return flow.Prompt{Text: "✅ Текст обновлён!"}, nil
		},
	}
}
