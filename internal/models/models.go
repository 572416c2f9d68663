package models

import "time"

// Ticket statuses. Only StatusNew is ever set by the bot itself;
// further transitions are made by the administrator.
const (
	StatusNew        = "новый"
	StatusInProgress = "в работе"
	StatusDone       = "выполнен"
	StatusCancelled  = "отменён"
)

// Ticket is a confirmed order produced by the order questionnaire.
// Immutable once appended, except for Status.
type Ticket struct {
	OrderID    string    `json:"order_id"`
	UserID     int64     `json:"user_id"`
	FIO        string    `json:"fio"`
	Contact    string    `json:"contact"`
	Idea       string    `json:"idea"`
	TypeBot    string    `json:"type_bot"`
	Budget     string    `json:"budget"`
	Deadline   string    `json:"deadline"`
	Options    string    `json:"options"`
	Settings   string    `json:"settings"`
	FileID     string    `json:"file_id,omitempty"`
	Hosting    string    `json:"hosting"`
	BonusUsed  bool      `json:"bonus_used"`
	BonusSpent int       `json:"bonus_spent"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Review moderation statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is a customer review awaiting or past moderation.
type Review struct {
	ID     int       `json:"id"`
	Author string    `json:"author"`
	Rating int       `json:"rating"`
	Text   string    `json:"text"`
	UserID int64     `json:"user_id"`
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

// PortfolioCase is a single portfolio entry editable by the administrator.
type PortfolioCase struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Details   string    `json:"details"`
	AddedAt   time.Time `json:"added_date"`
	UpdatedAt time.Time `json:"updated_date,omitzero"`
}

// FAQItem is a question/answer pair.
type FAQItem struct {
	ID        string    `json:"id"`
	Question  string    `json:"q"`
	Answer    string    `json:"a"`
	AddedAt   time.Time `json:"added_date"`
	UpdatedAt time.Time `json:"updated_date,omitzero"`
}

// Contacts holds the developer's contact channels.
type Contacts struct {
	Telegram  string    `json:"telegram"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	WhatsApp  string    `json:"whatsapp"`
	UpdatedAt time.Time `json:"updated_date,omitzero"`
}
