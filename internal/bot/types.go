package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"clientbot/internal/backup"
	"clientbot/internal/content"
	"clientbot/internal/flow"
	"clientbot/internal/storage"
)

// Bot wires inbound Telegram events to menu handlers and conversation
// flows. All dialogue state lives in the flow engine; the bot itself
// only routes and renders.
type Bot struct {
	api     *tgbotapi.BotAPI
	engine  *flow.Engine
	tickets storage.TicketStore
	bonuses storage.BonusStore
	reviews storage.ReviewStore
	content *content.Manager
	backups *backup.Manager
	adminID int64
	logger  *zap.Logger

	// referralBonus is credited to the referrer per invited user.
	referralBonus int
	// backupKeep bounds the archive count after a cleanup.
	backupKeep int
}

// Deps carries everything the bot needs besides the Telegram API.
type Deps struct {
	Tickets       storage.TicketStore
	Bonuses       storage.BonusStore
	Reviews       storage.ReviewStore
	Content       *content.Manager
	Backups       *backup.Manager
	AdminUserID   int64
	ReferralBonus int
	BackupKeep    int
	Logger        *zap.Logger
}
