package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one persisted query/reply pair. Exchanges are append-only:
// once created they are never updated or deleted by the application.
type Exchange struct {
	ID        string    `json:"exchange_id"`
	UserID    string    `json:"user_id"`
	Query     string    `json:"query"`
	Reply     string    `json:"reply"`
	Provider  string    `json:"provider"`
	Tokens    int       `json:"tokens"`
	CreatedAt time.Time `json:"created_at"`
}

// NewExchange builds an exchange for a completed provider result.
// Tokens below zero are clamped to zero; adapters that cannot report
// usage report zero and the record must never go negative.
func NewExchange(userID, query, reply, provider string, tokens int) *Exchange {
	if tokens < 0 {
		tokens = 0
	}
	return &Exchange{
		ID:        uuid.New().String(),
		UserID:    userID,
		Query:     query,
		Reply:     reply,
		Provider:  provider,
		Tokens:    tokens,
		CreatedAt: time.Now().UTC(),
	}
}

// ExchangeFilter narrows an exchange listing. Zero values mean "no
// constraint". From and To are both inclusive.
type ExchangeFilter struct {
	UserID   string
	Provider string
	From     *time.Time
	To       *time.Time
}

// Page describes one requested page of results.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps page parameters to sane values.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = 20
	}
	return p
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ExchangePage is one page of exchanges plus pagination metadata.
type ExchangePage struct {
	Items  []*Exchange `json:"items"`
	Total  int         `json:"total"`
	Number int         `json:"page"`
	Size   int         `json:"limit"`
	Pages  int         `json:"pages"`
}

// PageCount returns ceil(total/size) for a positive page size.
func PageCount(total, size int) int {
	if size < 1 {
		return 0
	}
	return (total + size - 1) / size
}
