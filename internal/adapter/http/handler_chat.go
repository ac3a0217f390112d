package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/askgate/askgate/internal/adapter/http/response"
	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/usecase"
)

// ChatHandler serves query submission and per-user history.
type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
	auth        *AuthMiddleware
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, auth *AuthMiddleware) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase, auth: auth}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/chat/query", h.auth.RequireAuth(h.SubmitQuery)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/chat/history/{userId}", h.auth.RequireAuth(h.GetHistory)).Methods(http.MethodGet)
}

type queryRequest struct {
	Query    string `json:"query"`
	Provider string `json:"provider,omitempty"`
}

type queryResponse struct {
	ExchangeID string    `json:"exchange_id"`
	Reply      string    `json:"reply"`
	Provider   string    `json:"provider"`
	Tokens     int       `json:"tokens"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitQuery handles POST /api/v1/chat/query.
func (h *ChatHandler) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	exchange, err := h.chatUseCase.SubmitQuery(r.Context(), p, req.Query, req.Provider)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "query answered", queryResponse{
		ExchangeID: exchange.ID,
		Reply:      exchange.Reply,
		Provider:   exchange.Provider,
		Tokens:     exchange.Tokens,
		CreatedAt:  exchange.CreatedAt,
	})
}

// GetHistory handles GET /api/v1/chat/history/{userId}.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	targetUserID := mux.Vars(r)["userId"]
	filter, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	page := parsePage(r, 20)
	result, err := h.chatUseCase.GetHistory(r.Context(), p, targetUserID, filter, page)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "history retrieved", result)
}

// parsePage reads page/limit query params with a handler default size.
func parsePage(r *http.Request, defaultSize int) domain.Page {
	page := domain.Page{Number: 1, Size: defaultSize}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page.Number = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page.Size = n
		}
	}
	return page
}

// parseDateRange reads optional startDate/endDate params, accepting
// RFC3339 timestamps or plain dates. Both bounds are inclusive.
func parseDateRange(r *http.Request) (domain.ExchangeFilter, error) {
	var filter domain.ExchangeFilter
	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			return filter, err
		}
		// a bare end date means end of that day
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &t
	}
	return filter, nil
}

func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.NewValidation("dates must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}
