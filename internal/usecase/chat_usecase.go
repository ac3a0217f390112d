package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
	"github.com/askgate/askgate/internal/provider"
)

// QueryRouter resolves a provider name and invokes exactly one adapter.
type QueryRouter interface {
	Route(ctx context.Context, query, name string) (string, provider.Result, error)
	Default() string
}

// ChatUseCase handles query submission and history reads.
type ChatUseCase struct {
	router         QueryRouter
	exchangeRepo   ports.ExchangeRepository
	requestTimeout time.Duration
}

// NewChatUseCase builds the chat usecase. requestTimeout bounds one
// provider round-trip; zero disables the bound and only the caller's
// ctx applies.
func NewChatUseCase(router QueryRouter, exchangeRepo ports.ExchangeRepository, requestTimeout time.Duration) *ChatUseCase {
	return &ChatUseCase{router: router, exchangeRepo: exchangeRepo, requestTimeout: requestTimeout}
}

// SubmitQuery routes the query to the named provider (or the default),
// persists the completed exchange and returns it. The exchange is
// appended only after a full successful provider result, so a canceled
// or failed provider call never leaves a partial record.
func (uc *ChatUseCase) SubmitQuery(ctx context.Context, p domain.Principal, query, providerName string) (*domain.Exchange, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidation("query is required")
	}

	routeCtx := ctx
	if uc.requestTimeout > 0 {
		var cancel context.CancelFunc
		routeCtx, cancel = context.WithTimeout(ctx, uc.requestTimeout)
		defer cancel()
	}
	name, result, err := uc.router.Route(routeCtx, query, providerName)
	if err != nil {
		return nil, err
	}

	exchange := domain.NewExchange(p.ID, query, result.Reply, name, result.Tokens)
	if err := uc.exchangeRepo.Append(ctx, exchange); err != nil {
		return nil, err
	}
	return exchange, nil
}

// GetHistory returns one page of targetUserID's exchanges, newest
// first. Admins may read anyone's history, users only their own.
func (uc *ChatUseCase) GetHistory(ctx context.Context, p domain.Principal, targetUserID string, filter domain.ExchangeFilter, page domain.Page) (*domain.ExchangePage, error) {
	if targetUserID == "" {
		return nil, domain.NewValidation("user id is required")
	}
	if !domain.CanReadHistory(p, targetUserID) {
		return nil, domain.NewAccessDenied("cannot read another user's history")
	}

	filter.UserID = targetUserID
	return uc.exchangeRepo.List(ctx, filter, page)
}
