package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"clientbot/internal/backup"
)

// sendBackupMenu lists available archives with restore/delete buttons.
func (b *Bot) sendBackupMenu(chatID int64) {
	backups, err := b.backups.List()
	if err != nil {
		b.logger.Error("Failed to list backups", zap.Error(err))
		b.sendText(chatID, "❌ Не удалось получить список бекапов")
		return
	}

	text := fmt.Sprintf("💾 <b>БЕКАПЫ</b>\n\nВсего: %d\n", len(backups))
	for _, info := range backups {
		text += fmt.Sprintf("\n📦 %s (%.2f KB)", info.Filename, info.SizeKB)
		if info.Metadata != nil {
			text += fmt.Sprintf("\nСоздан: %s\nЗаказов: %d, рефералов: %d, отзывов: %d\n",
				info.Metadata.CreatedAt.Format("2006-01-02 15:04:05"),
				info.Metadata.Records["tickets"],
				info.Metadata.Records["referrals"],
				info.Metadata.Records["reviews"])
		}
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Создать бекап", "abk_create")),
	}
	for _, info := range backups {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♻️ "+info.Filename, "abk_restore_"+info.Filename),
			tgbotapi.NewInlineKeyboardButtonData("🗑️", "abk_delete_"+info.Filename),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "admin_menu")))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}

// snapshotData captures every table the backup covers.
func (b *Bot) snapshotData() backup.Data {
	return backup.Data{
		Tickets:   b.tickets.Snapshot(),
		Referrals: b.bonuses.SnapshotReferrals(),
		Bonuses:   b.bonuses.SnapshotBalances(),
		Reviews:   b.reviews.Snapshot(),
	}
}

func (b *Bot) createBackup(chatID int64) {
	path, err := b.backups.Create(b.snapshotData())
	if err != nil {
		b.logger.Error("Failed to create backup", zap.Error(err))
		b.sendText(chatID, "❌ Ошибка при создании бекапа")
		return
	}

	if err := b.backups.CleanupOld(b.backupKeep); err != nil {
		b.logger.Warn("Failed to clean up old backups", zap.Error(err))
	}

	b.sendText(chatID, fmt.Sprintf("✅ Бекап создан: %s", path))
}

func (b *Bot) restoreBackup(chatID int64, filename string) {
	data, err := b.backups.Restore(b.backups.Path(filename))
	if err != nil {
		b.logger.Error("Failed to restore backup",
			zap.Error(err), zap.String("file", filename))
		b.sendText(chatID, "❌ Ошибка при восстановлении бекапа")
		return
	}

	b.tickets.Restore(data.Tickets)
	b.bonuses.Restore(data.Bonuses, data.Referrals)
	b.reviews.Restore(data.Reviews)

	b.sendText(chatID, fmt.Sprintf(
		"✅ Данные восстановлены из %s\nЗаказов: %d, рефералов: %d, отзывов: %d",
		filename, len(data.Tickets), len(data.Referrals), len(data.Reviews)))
}

func (b *Bot) deleteBackup(chatID int64, filename string) {
	if err := b.backups.Delete(b.backups.Path(filename)); err != nil {
		b.logger.Error("Failed to delete backup",
			zap.Error(err), zap.String("file", filename))
		b.sendText(chatID, "❌ Ошибка при удалении бекапа")
		return
	}
	b.sendText(chatID, "✅ Бекап удалён: "+filename)
}
