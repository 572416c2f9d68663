package memory

import (
	"sync"

	"clientbot/internal/storage"
)

// Bonuses is the in-memory referral/bonus ledger. It maps users to
// accrued bonus amounts and referrers to the users they invited.
type Bonuses struct {
	mu        sync.Mutex
	balances  map[int64]int
	referrals map[int64][]int64
}

// NewBonuses creates an empty bonus ledger.
func NewBonuses() *Bonuses {
	return &Bonuses{
		balances:  make(map[int64]int),
		referrals: make(map[int64][]int64),
	}
}

// Credit adds amount to the user's balance.
func (b *Bonuses) Credit(userID int64, amount int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances[userID] += amount
}

// Debit subtracts amount from the user's balance. The debit is atomic:
// if the balance is insufficient, nothing changes and
// storage.ErrInsufficientBonus is returned.
func (b *Bonuses) Debit(userID int64, amount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.balances[userID] < amount {
		return storage.ErrInsufficientBonus
	}
	b.balances[userID] -= amount
	return nil
}

// Balance returns the user's current bonus balance.
func (b *Bonuses) Balance(userID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balances[userID]
}

// AddReferral records that referrerID invited referredID.
func (b *Bonuses) AddReferral(referrerID, referredID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.referrals[referrerID] = append(b.referrals[referrerID], referredID)
}

// Referrals returns the users invited by the given referrer.
func (b *Bonuses) Referrals(referrerID int64) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]int64, len(b.referrals[referrerID]))
	copy(out, b.referrals[referrerID])
	return out
}

// SnapshotBalances returns a copy of the balance table for backup.
func (b *Bonuses) SnapshotBalances() map[int64]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[int64]int, len(b.balances))
	for id, amount := range b.balances {
		out[id] = amount
	}
	return out
}

// SnapshotReferrals returns a copy of the referral graph for backup.
func (b *Bonuses) SnapshotReferrals() map[int64][]int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[int64][]int64, len(b.referrals))
	for id, referred := range b.referrals {
		list := make([]int64, len(referred))
		copy(list, referred)
		out[id] = list
	}
	return out
}

// Restore replaces both tables with the given snapshot.
func (b *Bonuses) Restore(balances map[int64]int, referrals map[int64][]int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances = make(map[int64]int, len(balances))
	for id, amount := range balances {
		b.balances[id] = amount
	}
	b.referrals = make(map[int64][]int64, len(referrals))
	for id, referred := range referrals {
		list := make([]int64, len(referred))
		copy(list, referred)
		b.referrals[id] = list
	}
}
