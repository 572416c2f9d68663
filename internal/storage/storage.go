package storage

import (
	"errors"

	"clientbot/internal/models"
)

// ErrInsufficientBonus is returned by Debit when the requested amount
// exceeds the user's balance. The balance is left untouched.
var ErrInsufficientBonus = errors.New("insufficient bonus balance")

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// TicketStore keeps submitted orders. Tickets are append-only; only the
// status field may change after creation.
type TicketStore interface {
	AppendTicket(ticket models.Ticket) error
	TicketByID(orderID string) (models.Ticket, error)
	TicketsByUser(userID int64) ([]models.Ticket, error)
	SetTicketStatus(orderID, status string) error

	// Backup hooks.
	Snapshot() []models.Ticket
	Restore(tickets []models.Ticket)
}

// BonusStore is the referral/bonus ledger shared by the order flow,
// the calculator and the /start referral handler. All mutations are
// atomic per user; a balance never goes negative.
type BonusStore interface {
	Credit(userID int64, amount int)
	Debit(userID int64, amount int) error
	Balance(userID int64) int
	AddReferral(referrerID, referredID int64)
	Referrals(referrerID int64) []int64

	// Backup hooks.
	SnapshotBalances() map[int64]int
	SnapshotReferrals() map[int64][]int64
	Restore(balances map[int64]int, referrals map[int64][]int64)
}

// ReviewStore keeps customer reviews through moderation.
type ReviewStore interface {
	AddReview(review models.Review) int
	SetReviewStatus(id int, status string) error
	Approved() []models.Review
	Pending() []models.Review

	// Backup hooks.
	Snapshot() []models.Review
	Restore(reviews []models.Review)
}
