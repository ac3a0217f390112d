package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/askgate/askgate/internal/adapter/http/response"
	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/usecase"
)

// UserHandler serves admin-only user management.
type UserHandler struct {
	userUseCase *usecase.UserUseCase
	auth        *AuthMiddleware
}

func NewUserHandler(userUseCase *usecase.UserUseCase, auth *AuthMiddleware) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, auth: auth}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/admin/users", h.auth.RequireAdmin(h.ListUsers)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/admin/users", h.auth.RequireAdmin(h.CreateUser)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/admin/users/{id}", h.auth.RequireAdmin(h.DeleteUser)).Methods(http.MethodDelete)
}

// ListUsers handles GET /api/v1/admin/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	page := parsePage(r, 50)
	users, total, err := h.userUseCase.ListUsers(r.Context(), p, page)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "users retrieved", map[string]interface{}{
		"items": users,
		"total": total,
		"page":  page.Number,
		"limit": page.Size,
		"pages": domain.PageCount(total, page.Size),
	})
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser handles POST /api/v1/admin/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}

	user, err := h.userUseCase.CreateUser(r.Context(), p, req.Email, req.Name, req.Password, role)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "user created", user)
}

// DeleteUser handles DELETE /api/v1/admin/users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "user not authenticated")
		return
	}

	if err := h.userUseCase.DeleteUser(r.Context(), p, mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "user deleted", nil)
}
