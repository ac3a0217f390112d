package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/askgate/askgate/internal/adapter/http/response"
	"github.com/askgate/askgate/internal/usecase"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	auth        *AuthMiddleware
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, auth *AuthMiddleware) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/auth/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/auth/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/auth/logout", h.auth.RequireAuth(h.Logout)).Methods(http.MethodPost)
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.authUseCase.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "user registered", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.authUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "login successful", result)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		response.Unauthorized(w, "authorization header required")
		return
	}
	if err := h.authUseCase.Logout(r.Context(), token); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "logged out", nil)
}
