package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/askgate/askgate/internal/adapter/http/response"
	"github.com/askgate/askgate/internal/usecase"
)

// AdminHandler serves the audited admin surface: cross-user query logs
// and usage statistics.
type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
	auth         *AuthMiddleware
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, auth *AuthMiddleware) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/admin/logs", h.auth.RequireAdmin(h.ListLogs)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/admin/stats", h.auth.RequireAdmin(h.GetStats)).Methods(http.MethodGet)
}

// ListLogs handles GET /api/v1/admin/logs.
func (h *AdminHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	filter, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	filter.UserID = r.URL.Query().Get("userId")
	filter.Provider = r.URL.Query().Get("provider")

	page := parsePage(r, 50)
	result, err := h.adminUseCase.ListLogs(r.Context(), p, filter, page)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "logs retrieved", result)
}

// GetStats handles GET /api/v1/admin/stats.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	summary, err := h.adminUseCase.Summarize(r.Context(), p, r.URL.Query().Get("period"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "statistics retrieved", summary)
}
