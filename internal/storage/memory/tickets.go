// Package memory provides the in-process implementations of the bot's
// stores. The ledgers live in memory for the bot's lifetime; durability
// is handled by the backup facade, which snapshots and restores them.
package memory

import (
	"sync"

	"clientbot/internal/models"
	"clientbot/internal/storage"
)

// Tickets is an in-memory append-only ticket ledger.
type Tickets struct {
	mu      sync.RWMutex
	tickets []models.Ticket
}

// NewTickets creates an empty ticket ledger.
func NewTickets() *Tickets {
	return &Tickets{tickets: make([]models.Ticket, 0)}
}

// AppendTicket adds a new ticket to the ledger.
func (t *Tickets) AppendTicket(ticket models.Ticket) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tickets = append(t.tickets, ticket)
	return nil
}

// TicketByID returns the ticket with the given order id.
func (t *Tickets) TicketByID(orderID string) (models.Ticket, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, ticket := range t.tickets {
		if ticket.OrderID == orderID {
			return ticket, nil
		}
	}
	return models.Ticket{}, storage.ErrNotFound
}

// TicketsByUser returns all tickets submitted by the given user, in
// submission order.
func (t *Tickets) TicketsByUser(userID int64) ([]models.Ticket, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []models.Ticket
	for _, ticket := range t.tickets {
		if ticket.UserID == userID {
			result = append(result, ticket)
		}
	}
	return result, nil
}

// SetTicketStatus updates the status of an existing ticket.
func (t *Tickets) SetTicketStatus(orderID, status string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.tickets {
		if t.tickets[i].OrderID == orderID {
			t.tickets[i].Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

// Snapshot returns a copy of all tickets for backup.
func (t *Tickets) Snapshot() []models.Ticket {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.Ticket, len(t.tickets))
	copy(out, t.tickets)
	return out
}

// Restore replaces the ledger contents with the given tickets.
func (t *Tickets) Restore(tickets []models.Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tickets = make([]models.Ticket, len(tickets))
	copy(t.tickets, tickets)
}
