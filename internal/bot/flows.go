package bot

import (
	"errors"
	"strings"

	"clientbot/internal/flow"
)

// Flow ids. Customer flows start from the main menu; admin flows start
// from the admin panel callbacks.
const (
	flowOrder  = "order"
	flowCalc   = "calc"
	flowStatus = "status"
	flowReview = "review"

	flowAdminCaseAdd     = "admin_case_add"
	flowAdminCaseEdit    = "admin_case_edit"
	flowAdminFAQAdd      = "admin_faq_add"
	flowAdminFAQEdit     = "admin_faq_edit"
	flowAdminContactEdit = "admin_contact_edit"
	flowAdminAboutEdit   = "admin_about_edit"
)

// registerFlows declares every conversation the bot can run. Flow
// definitions are static; a registration error is a programming bug.
func (b *Bot) registerFlows() {
	for _, f := range []*flow.Flow{
		b.orderFlow(),
		b.calcFlow(),
		b.statusFlow(),
		b.reviewFlow(),
		b.adminCaseAddFlow(),
		b.adminCaseEditFlow(),
		b.adminFAQAddFlow(),
		b.adminFAQEditFlow(),
		b.adminContactEditFlow(),
		b.adminAboutEditFlow(),
	} {
		if err := b.engine.Register(f); err != nil {
			panic(err)
		}
	}
}

// textPrompt builds a fixed-text prompt function.
func textPrompt(text string) func(*flow.Session) flow.Prompt {
	return func(*flow.Session) flow.Prompt {
		return flow.Prompt{Text: text}
	}
}

// nonEmpty accepts any non-empty free text and trims it.
func nonEmpty(_ *flow.Session, in flow.Input) (string, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", errors.New("Пожалуйста, введите текст.")
	}
	return text, nil
}

// yesNo normalizes a да/нет answer.
func yesNo(_ *flow.Session, in flow.Input) (string, error) {
	switch strings.ToLower(strings.TrimSpace(in.Text)) {
	case "да":
		return "да", nil
	case "нет":
		return "нет", nil
	default:
		return "", errors.New("Ответьте 'да' или 'нет'.")
	}
}
