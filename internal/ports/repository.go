package ports

import (
	"context"
	"time"

	"github.com/askgate/askgate/internal/domain"
)

// ExchangeRepository defines the interface for exchange persistence.
// Exchanges are append-only; there is no update or delete.
type ExchangeRepository interface {
	// Append inserts one immutable exchange.
	Append(ctx context.Context, exchange *domain.Exchange) error

	// List retrieves exchanges matching the filter, newest first.
	List(ctx context.Context, filter domain.ExchangeFilter, page domain.Page) (*domain.ExchangePage, error)

	// CountSince returns the number of exchanges created at or after since.
	CountSince(ctx context.Context, since time.Time) (int, error)

	// ProviderStatsSince aggregates per-provider counts and token totals
	// for exchanges created at or after since.
	ProviderStatsSince(ctx context.Context, since time.Time) ([]domain.ProviderStat, error)

	// DailyActivitySince counts exchanges per UTC calendar day, ascending,
	// for exchanges created at or after since.
	DailyActivitySince(ctx context.Context, since time.Time) ([]domain.DailyCount, error)
}

// AuditRepository defines the interface for audit trail persistence.
// The audit trail is write-path only in this service.
type AuditRepository interface {
	// Record appends one audit entry.
	Record(ctx context.Context, entry *domain.AuditEntry) error
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page domain.Page) ([]*domain.User, int, error)
	Delete(ctx context.Context, id string) error

	// CountCreatedSince returns how many users registered at or after
	// since. Used for the new-user cohort in analytics.
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

// TokenService issues and validates access tokens.
type TokenService interface {
	Generate(principal domain.Principal) (string, error)
	Validate(token string) (*domain.Principal, error)
}

// PasswordService hashes and verifies passwords.
type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// SessionStore tracks revoked access tokens until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
