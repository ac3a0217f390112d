package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/provider"
	"github.com/askgate/askgate/internal/usecase"
)

// stubTokens maps fixed bearer tokens to principals.
type stubTokens struct{}

func (stubTokens) Generate(p domain.Principal) (string, error) { return "", nil }

func (stubTokens) Validate(token string) (*domain.Principal, error) {
	switch token {
	case "user-token":
		return &domain.Principal{ID: "user-1", Role: domain.RoleUser}, nil
	case "admin-token":
		return &domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, nil
	}
	return nil, errors.New("invalid token")
}

type stubSessions struct{}

func (stubSessions) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return nil
}

func (stubSessions) IsRevoked(ctx context.Context, token string) (bool, error) {
	return false, nil
}

type stubRouter struct {
	err error
}

func (s stubRouter) Route(ctx context.Context, query, name string) (string, provider.Result, error) {
	if s.err != nil {
		return "", provider.Result{}, s.err
	}
	if name == "" {
		name = "openai"
	}
	if name != "openai" && name != "gemini" {
		return "", provider.Result{}, domain.NewUnknownProvider(name)
	}
	return name, provider.Result{Reply: "stub reply", Tokens: 9}, nil
}

func (s stubRouter) Default() string { return "openai" }

// memExchangeRepo is an in-memory append-only exchange store.
type memExchangeRepo struct {
	exchanges []*domain.Exchange
	failNext  bool
}

func (m *memExchangeRepo) Append(ctx context.Context, ex *domain.Exchange) error {
	if m.failNext {
		return domain.NewStorageFailure("append exchange", errors.New("db down"))
	}
	m.exchanges = append(m.exchanges, ex)
	return nil
}

func (m *memExchangeRepo) List(ctx context.Context, filter domain.ExchangeFilter, page domain.Page) (*domain.ExchangePage, error) {
	page = page.Normalize()
	var matched []*domain.Exchange
	for i := len(m.exchanges) - 1; i >= 0; i-- {
		ex := m.exchanges[i]
		if filter.UserID != "" && ex.UserID != filter.UserID {
			continue
		}
		if filter.Provider != "" && ex.Provider != filter.Provider {
			continue
		}
		matched = append(matched, ex)
	}
	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}
	return &domain.ExchangePage{
		Items:  matched[start:end],
		Total:  total,
		Number: page.Number,
		Size:   page.Size,
		Pages:  domain.PageCount(total, page.Size),
	}, nil
}

func (m *memExchangeRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	count := 0
	for _, ex := range m.exchanges {
		if !ex.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *memExchangeRepo) ProviderStatsSince(ctx context.Context, since time.Time) ([]domain.ProviderStat, error) {
	byProvider := map[string]*domain.ProviderStat{}
	var order []string
	for _, ex := range m.exchanges {
		if ex.CreatedAt.Before(since) {
			continue
		}
		stat, ok := byProvider[ex.Provider]
		if !ok {
			stat = &domain.ProviderStat{Provider: ex.Provider}
			byProvider[ex.Provider] = stat
			order = append(order, ex.Provider)
		}
		stat.Count++
		stat.TotalTokens += ex.Tokens
	}
	var stats []domain.ProviderStat
	for _, name := range order {
		stats = append(stats, *byProvider[name])
	}
	return stats, nil
}

func (m *memExchangeRepo) DailyActivitySince(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	byDay := map[string]int{}
	var order []string
	for _, ex := range m.exchanges {
		if ex.CreatedAt.Before(since) {
			continue
		}
		day := ex.CreatedAt.UTC().Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			order = append(order, day)
		}
		byDay[day]++
	}
	var activity []domain.DailyCount
	for _, day := range order {
		activity = append(activity, domain.DailyCount{Date: day, Count: byDay[day]})
	}
	return activity, nil
}

func newChatRouter(repo *memExchangeRepo, routerErr error) *mux.Router {
	auth := NewAuthMiddleware(stubTokens{}, stubSessions{})
	uc := usecase.NewChatUseCase(stubRouter{err: routerErr}, repo, 0)
	handler := NewChatHandler(uc, auth)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestChatHandler_SubmitQuery(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		token          string
		routerErr      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "successful query",
			body:           `{"query": "what is dns", "provider": "gemini"}`,
			token:          "user-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing query",
			body:           `{"provider": "openai"}`,
			token:          "user-token",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION",
		},
		{
			name:           "unknown provider",
			body:           `{"query": "hi", "provider": "nonexistent"}`,
			token:          "user-token",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNKNOWN_PROVIDER",
		},
		{
			name:           "provider failure",
			body:           `{"query": "hi"}`,
			token:          "user-token",
			routerErr:      domain.NewProviderFailure(errors.New("vendor 500")),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "PROVIDER_FAILURE",
		},
		{
			name:           "invalid body",
			body:           `{"query": not json}`,
			token:          "user-token",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing token",
			body:           `{"query": "hi"}`,
			token:          "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memExchangeRepo{}
			router := newChatRouter(repo, tt.routerErr)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/query", strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var envelope struct {
					Code string `json:"code"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
				assert.Equal(t, tt.expectedCode, envelope.Code)
			}
			if tt.expectedStatus == http.StatusOK {
				require.Len(t, repo.exchanges, 1)
				assert.Equal(t, "user-1", repo.exchanges[0].UserID)
				assert.Equal(t, "stub reply", repo.exchanges[0].Reply)
			} else {
				assert.Empty(t, repo.exchanges)
			}
		})
	}
}

func TestChatHandler_SubmitQueryStorageFailure(t *testing.T) {
	repo := &memExchangeRepo{failNext: true}
	router := newChatRouter(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/query", strings.NewReader(`{"query": "hi"}`))
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatHandler_GetHistory(t *testing.T) {
	repo := &memExchangeRepo{}
	router := newChatRouter(repo, nil)

	// seed two exchanges for user-1, one for user-2
	repo.exchanges = []*domain.Exchange{
		domain.NewExchange("user-1", "q1", "r1", "openai", 10),
		domain.NewExchange("user-1", "q2", "r2", "gemini", 0),
		domain.NewExchange("user-2", "q3", "r3", "openai", 5),
	}

	t.Run("own history succeeds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/user-1?page=1&limit=10", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var envelope struct {
			Data domain.ExchangePage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, 2, envelope.Data.Total)
		assert.Equal(t, 1, envelope.Data.Pages)
	})

	t.Run("another user's history is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/user-2", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin reads any user's history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/user-2", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("page beyond range returns empty items with correct total", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/user-1?page=9&limit=10", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var envelope struct {
			Data domain.ExchangePage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Empty(t, envelope.Data.Items)
		assert.Equal(t, 2, envelope.Data.Total)
	})

	t.Run("bad date parameter is a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/user-1?startDate=yesterday", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
