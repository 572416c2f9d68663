// Package content manages the bot's editable content (portfolio cases,
// FAQ entries, contacts and the about text) as JSON files on disk, so
// the administrator can edit everything from the chat without touching
// the server.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"clientbot/internal/models"
	"clientbot/internal/storage"
)

const defaultAbout = "👤 О себе\nИнформация будет добавлена администратором."

// Manager reads and writes the content JSON files. All operations are
// single-file reads or writes; no multi-document transactions exist.
type Manager struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// NewManager creates the content directory if needed.
func NewManager(dir string, logger *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	return &Manager{dir: dir, logger: logger}, nil
}

func (m *Manager) load(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (m *Manager) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	m.logger.Info("Content saved", zap.String("file", name))
	return nil
}

// Portfolio returns all portfolio cases.
func (m *Manager) Portfolio() ([]models.PortfolioCase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cases []models.PortfolioCase
	err := m.load("portfolio.json", &cases)
	return cases, err
}

// Case returns one portfolio case by id.
func (m *Manager) Case(id string) (models.PortfolioCase, error) {
	cases, err := m.Portfolio()
	if err != nil {
		return models.PortfolioCase{}, err
	}
	for _, c := range cases {
		if c.ID == id {
			return c, nil
		}
	}
	return models.PortfolioCase{}, storage.ErrNotFound
}

// AddCase appends a new portfolio case and returns its id.
func (m *Manager) AddCase(title, desc, details string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cases []models.PortfolioCase
	if err := m.load("portfolio.json", &cases); err != nil {
		return "", err
	}

	id := fmt.Sprintf("case_%d", len(cases)+1)
	cases = append(cases, models.PortfolioCase{
		ID:      id,
		Title:   title,
		Desc:    desc,
		Details: details,
		AddedAt: time.Now(),
	})
	return id, m.save("portfolio.json", cases)
}

// UpdateCase rewrites the given fields of an existing case. Empty
// arguments leave the corresponding field unchanged.
func (m *Manager) UpdateCase(id, title, desc, details string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cases []models.PortfolioCase
	if err := m.load("portfolio.json", &cases); err != nil {
		return err
	}

	for i := range cases {
		if cases[i].ID != id {
			continue
		}
		if title != "" {
			cases[i].Title = title
		}
		if desc != "" {
			cases[i].Desc = desc
		}
		if details != "" {
			cases[i].Details = details
		}
		cases[i].UpdatedAt = time.Now()
		return m.save("portfolio.json", cases)
	}
	return storage.ErrNotFound
}

// DeleteCase removes a case from the portfolio.
func (m *Manager) DeleteCase(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cases []models.PortfolioCase
	if err := m.load("portfolio.json", &cases); err != nil {
		return err
	}

	kept := cases[:0]
	for _, c := range cases {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return m.save("portfolio.json", kept)
}

// FAQ returns all question/answer entries.
func (m *Manager) FAQ() ([]models.FAQItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var faq []models.FAQItem
	err := m.load("faq.json", &faq)
	return faq, err
}

// AddFAQ appends a new entry and returns its id.
func (m *Manager) AddFAQ(question, answer string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var faq []models.FAQItem
	if err := m.load("faq.json", &faq); err != nil {
		return "", err
	}

	id := fmt.Sprintf("faq_%d", len(faq)+1)
	faq = append(faq, models.FAQItem{
		ID:       id,
		Question: question,
		Answer:   answer,
		AddedAt:  time.Now(),
	})
	return id, m.save("faq.json", faq)
}

// UpdateFAQ rewrites the given fields of an entry; empty arguments
// leave the field unchanged.
func (m *Manager) UpdateFAQ(id, question, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var faq []models.FAQItem
	if err := m.load("faq.json", &faq); err != nil {
		return err
	}

	for i := range faq {
		if faq[i].ID != id {
			continue
		}
		if question != "" {
			faq[i].Question = question
		}
		if answer != "" {
			faq[i].Answer = answer
		}
		faq[i].UpdatedAt = time.Now()
		return m.save("faq.json", faq)
	}
	return storage.ErrNotFound
}

// DeleteFAQ removes an entry.
func (m *Manager) DeleteFAQ(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var faq []models.FAQItem
	if err := m.load("faq.json", &faq); err != nil {
		return err
	}

	kept := faq[:0]
	for _, f := range faq {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return m.save("faq.json", kept)
}

// Contacts returns the current contact set, with placeholders when the
// file does not exist yet.
func (m *Manager) Contacts() (models.Contacts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	contacts := models.Contacts{
		Telegram: "@ваш_ник",
		Email:    "email@example.com",
		Phone:    "+7 (XXX) XXX-XX-XX",
	}
	err := m.load("contacts.json", &contacts)
	return contacts, err
}

// UpdateContact sets one contact field. Known fields: telegram, email,
// phone, whatsapp.
func (m *Manager) UpdateContact(field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	contacts := models.Contacts{
		Telegram: "@ваш_ник",
		Email:    "email@example.com",
		Phone:    "+7 (XXX) XXX-XX-XX",
	}
	if err := m.load("contacts.json", &contacts); err != nil {
		return err
	}

	switch field {
	case "telegram":
		contacts.Telegram = value
	case "email":
		contacts.Email = value
	case "phone":
		contacts.Phone = value
	case "whatsapp":
		contacts.WhatsApp = value
	default:
		return fmt.Errorf("unknown contact field %q", field)
	}
	contacts.UpdatedAt = time.Now()
	return m.save("contacts.json", contacts)
}

type aboutDoc struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_date,omitzero"`
}

// About returns the about text, or a placeholder when unset.
func (m *Manager) About() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var about aboutDoc
	if err := m.load("about.json", &about); err != nil {
		return "", err
	}
	if about.Text == "" {
		return defaultAbout, nil
	}
	return about.Text, nil
}

// UpdateAbout replaces the about text.
func (m *Manager) UpdateAbout(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.save("about.json", aboutDoc{Text: text, UpdatedAt: time.Now()})
}

// Stats summarizes the content for the admin panel.
type Stats struct {
	PortfolioCount int
	FAQCount       int
}

// ContentStats counts the editable documents.
func (m *Manager) ContentStats() (Stats, error) {
	cases, err := m.Portfolio()
	if err != nil {
		return Stats{}, err
	}
	faq, err := m.FAQ()
	if err != nil {
		return Stats{}, err
	}
	return Stats{PortfolioCount: len(cases), FAQCount: len(faq)}, nil
}
