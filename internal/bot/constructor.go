package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"clientbot/internal/flow"
)

// NewBot creates the Telegram bot and registers all conversation flows.
func NewBot(token string, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		deps.Logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := newBot(api, deps)

	deps.Logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))
	return b, nil
}

// newBot wires the bot without touching the network. Tests use it with
// a nil API.
func newBot(api *tgbotapi.BotAPI, deps Deps) *Bot {
	b := &Bot{
		api:           api,
		engine:        flow.NewEngine(deps.Logger),
		tickets:       deps.Tickets,
		bonuses:       deps.Bonuses,
		reviews:       deps.Reviews,
		content:       deps.Content,
		backups:       deps.Backups,
		adminID:       deps.AdminUserID,
		referralBonus: deps.ReferralBonus,
		backupKeep:    deps.BackupKeep,
		logger:        deps.Logger,
	}
	b.registerFlows()
	return b
}
