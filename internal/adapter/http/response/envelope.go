package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/askgate/askgate/internal/domain"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Code    string      `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Status: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, Envelope{Status: false, Message: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, string(domain.CodeValidation), message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, string(domain.CodeUnauthenticated), message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, string(domain.CodeAccessDenied), message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, string(domain.CodeInternal), message)
}

// FromError maps an application error to its stable category and HTTP
// status. Unknown errors become an opaque 500; their detail stays in
// the logs, not the response.
func FromError(w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		Error(w, appErr.Status, string(appErr.Code), appErr.Message)
		return
	}
	Error(w, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
}
