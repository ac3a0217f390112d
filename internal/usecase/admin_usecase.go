package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
)

// AdminUseCase serves the privileged read surface: cross-user exchange
// logs and windowed usage statistics. Every successful read appends
// exactly one audit entry; a failed audit append fails the request
// rather than returning data with a missing trail.
type AdminUseCase struct {
	exchangeRepo ports.ExchangeRepository
	userRepo     ports.UserRepository
	auditRepo    ports.AuditRepository
}

func NewAdminUseCase(exchangeRepo ports.ExchangeRepository, userRepo ports.UserRepository, auditRepo ports.AuditRepository) *AdminUseCase {
	return &AdminUseCase{exchangeRepo: exchangeRepo, userRepo: userRepo, auditRepo: auditRepo}
}

// ListLogs returns one page of exchanges across all users.
func (uc *AdminUseCase) ListLogs(ctx context.Context, p domain.Principal, filter domain.ExchangeFilter, page domain.Page) (*domain.ExchangePage, error) {
	if !domain.CanReadAdminSurface(p) {
		return nil, domain.NewAccessDenied("admin access required")
	}

	result, err := uc.exchangeRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	entry := domain.NewAuditEntry(domain.ActionViewLogs, p.ID, describeFilter(filter, page))
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		return nil, err
	}
	return result, nil
}

// Summarize computes usage statistics for the requested period token.
// Unrecognized tokens fall back to the 7d window (domain.ResolvePeriod).
func (uc *AdminUseCase) Summarize(ctx context.Context, p domain.Principal, period string) (*domain.Summary, error) {
	if !domain.CanReadAdminSurface(p) {
		return nil, domain.NewAccessDenied("admin access required")
	}

	normalized, windowStart := domain.ResolvePeriod(period, time.Now().UTC())

	totalQueries, err := uc.exchangeRepo.CountSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}
	newUsers, err := uc.userRepo.CountCreatedSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}
	providerStats, err := uc.exchangeRepo.ProviderStatsSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}
	dailyActivity, err := uc.exchangeRepo.DailyActivitySince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	entry := domain.NewAuditEntry(domain.ActionViewStats, p.ID, fmt.Sprintf("viewed statistics for period: %s", normalized))
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		return nil, err
	}

	return &domain.Summary{
		Period:        normalized,
		TotalQueries:  totalQueries,
		NewUsers:      newUsers,
		ProviderStats: providerStats,
		DailyActivity: dailyActivity,
	}, nil
}

// describeFilter renders the applied filter for the audit trail.
func describeFilter(filter domain.ExchangeFilter, page domain.Page) string {
	page = page.Normalize()
	parts := []string{fmt.Sprintf("page=%d", page.Number), fmt.Sprintf("limit=%d", page.Size)}
	if filter.UserID != "" {
		parts = append(parts, "user_id="+filter.UserID)
	}
	if filter.Provider != "" {
		parts = append(parts, "provider="+filter.Provider)
	}
	if filter.From != nil {
		parts = append(parts, "from="+filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		parts = append(parts, "to="+filter.To.UTC().Format(time.RFC3339))
	}
	return "viewed query logs with filters: " + strings.Join(parts, " ")
}
