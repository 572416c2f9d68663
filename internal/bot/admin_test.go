package bot

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientbot/internal/models"
)

func callbackQuery(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "test-callback",
		From:    &tgbotapi.User{ID: userID, FirstName: "Ivan"},
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: userID}},
	}
}

func TestAdminCallback_NonAdminCannotStartAdminFlow(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	b.handleCallbackQuery(callbackQuery(testUserID, "acontact_telegram"))
	_, _, ok := b.engine.Active(testUserID)
	assert.False(t, ok)

	b.handleCallbackQuery(callbackQuery(testAdminID, "acontact_telegram"))
	flowID, _, ok := b.engine.Active(testAdminID)
	require.True(t, ok)
	assert.Equal(t, flowAdminContactEdit, flowID)
}

func TestAdminCallback_NonAdminCannotModerate(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	id := env.reviews.AddReview(models.Review{Author: "Ivan", Text: "x", Status: models.ReviewPending})

	b.handleCallbackQuery(callbackQuery(testUserID, "arev_ok_1"))
	require.Len(t, env.reviews.Pending(), 1)

	b.handleCallbackQuery(callbackQuery(testAdminID, "arev_ok_1"))
	assert.Empty(t, env.reviews.Pending())
	approved := env.reviews.Approved()
	require.Len(t, approved, 1)
	assert.Equal(t, id, approved[0].ID)
}

func TestAdminFlow_AddCase(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	b.handleCallbackQuery(callbackQuery(testAdminID, "acase_add"))
	flowID, _, ok := b.engine.Active(testAdminID)
	require.True(t, ok)
	require.Equal(t, flowAdminCaseAdd, flowID)

	submit(t, b, testAdminID, "Бот-магазин")
	submit(t, b, testAdminID, "Магазин в Telegram")
	result := submit(t, b, testAdminID, "Каталог, корзина, приём оплаты")
	require.True(t, result.Done)

	cases, err := env.content.Portfolio()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "case_1", cases[0].ID)
	assert.Equal(t, "Бот-магазин", cases[0].Title)
	assert.Equal(t, "Магазин в Telegram", cases[0].Desc)
}

func TestAdminFlow_EditCaseField(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	id, err := env.content.AddCase("Старое название", "desc", "details")
	require.NoError(t, err)

	b.handleCallbackQuery(callbackQuery(testAdminID, "acasef_title_"+id))
	flowID, _, ok := b.engine.Active(testAdminID)
	require.True(t, ok)
	require.Equal(t, flowAdminCaseEdit, flowID)

	result := submit(t, b, testAdminID, "Новое название")
	require.True(t, result.Done)

	c, err := env.content.Case(id)
	require.NoError(t, err)
	assert.Equal(t, "Новое название", c.Title)
	assert.Equal(t, "desc", c.Desc)
}

func TestAdminCallback_DeleteCase(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	id, err := env.content.AddCase("t", "d", "x")
	require.NoError(t, err)

	// The first press only asks for confirmation.
	b.handleCallbackQuery(callbackQuery(testAdminID, "acasedel_"+id))
	cases, err := env.content.Portfolio()
	require.NoError(t, err)
	assert.Len(t, cases, 1)

	b.handleCallbackQuery(callbackQuery(testAdminID, "acasedelyes_"+id))
	cases, err = env.content.Portfolio()
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestAdminFlow_AddAndEditFAQ(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	b.handleCallbackQuery(callbackQuery(testAdminID, "afaq_add"))
	submit(t, b, testAdminID, "Сколько стоит бот?")
	result := submit(t, b, testAdminID, "От 5000 рублей.")
	require.True(t, result.Done)

	faq, err := env.content.FAQ()
	require.NoError(t, err)
	require.Len(t, faq, 1)

	b.handleCallbackQuery(callbackQuery(testAdminID, "afaqf_a_"+faq[0].ID))
	result = submit(t, b, testAdminID, "Цена начинается от 5000 рублей.")
	require.True(t, result.Done)

	faq, err = env.content.FAQ()
	require.NoError(t, err)
	require.Len(t, faq, 1)
	assert.Equal(t, "Сколько стоит бот?", faq[0].Question)
	assert.Equal(t, "Цена начинается от 5000 рублей.", faq[0].Answer)
}

func TestAdminFlow_EditContactAndAbout(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	b.handleCallbackQuery(callbackQuery(testAdminID, "acontact_email"))
	result := submit(t, b, testAdminID, "dev@example.org")
	require.True(t, result.Done)

	contacts, err := env.content.Contacts()
	require.NoError(t, err)
	assert.Equal(t, "dev@example.org", contacts.Email)

	b.handleCallbackQuery(callbackQuery(testAdminID, "aabout_edit"))
	result = submit(t, b, testAdminID, "Разрабатываю Telegram-ботов.")
	require.True(t, result.Done)

	about, err := env.content.About()
	require.NoError(t, err)
	assert.Equal(t, "Разрабатываю Telegram-ботов.", about)
}

func TestAdminCallback_RejectReview(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	env.reviews.AddReview(models.Review{Author: "Ivan", Text: "bad", Status: models.ReviewPending})

	b.handleCallbackQuery(callbackQuery(testAdminID, "arev_no_1"))
	assert.Empty(t, env.reviews.Pending())
	assert.Empty(t, env.reviews.Approved())
}

func TestAdminBackup_CreateRestoreDelete(t *testing.T) {
	env := newTestBot(t)
	b := env.bot

	require.NoError(t, env.tickets.AppendTicket(models.Ticket{
		OrderID: "a1b2c3d4", UserID: testUserID, Status: models.StatusNew,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}))
	env.bonuses.Credit(testUserID, 500)
	env.bonuses.AddReferral(testUserID, 200)
	env.reviews.AddReview(models.Review{Author: "Ivan", Text: "x", Status: models.ReviewApproved})

	b.handleCallbackQuery(callbackQuery(testAdminID, "abk_create"))

	backups, err := b.backups.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	require.NotNil(t, backups[0].Metadata)
	assert.Equal(t, 1, backups[0].Metadata.Records["tickets"])

	// Wreck the live state, then restore from the archive.
	env.tickets.Restore(nil)
	env.bonuses.Restore(nil, nil)
	env.reviews.Restore(nil)

	b.handleCallbackQuery(callbackQuery(testAdminID, "abk_restore_"+backups[0].Filename))

	ticket, err := env.tickets.TicketByID("a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, testUserID, ticket.UserID)
	assert.Equal(t, 500, env.bonuses.Balance(testUserID))
	assert.Equal(t, []int64{200}, env.bonuses.Referrals(testUserID))
	assert.Len(t, env.reviews.Approved(), 1)

	b.handleCallbackQuery(callbackQuery(testAdminID, "abk_delete_"+backups[0].Filename))
	backups, err = b.backups.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}
