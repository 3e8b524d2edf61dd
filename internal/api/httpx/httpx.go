package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/jungmin-dev/coffee-order-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteAppError renders a service error with its stable code and mapped
// status. Untyped errors come out as a generic 500.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	WriteError(w, apperr.HTTPStatus(code), string(code), apperr.MessageOf(err), nil)
}
