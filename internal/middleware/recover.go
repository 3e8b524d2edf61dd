package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jungmin-dev/coffee-order-backend/internal/api/httpx"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec)
				httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
