package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jungmin-dev/coffee-order-backend/internal/api/httpx"
	"github.com/jungmin-dev/coffee-order-backend/internal/api/validate"
	"github.com/jungmin-dev/coffee-order-backend/internal/apperr"
	"github.com/jungmin-dev/coffee-order-backend/internal/config"
	"github.com/jungmin-dev/coffee-order-backend/internal/metrics"
	"github.com/jungmin-dev/coffee-order-backend/internal/middleware"
	"github.com/jungmin-dev/coffee-order-backend/internal/services"
)

func NewRouter(cfg config.Config, us *services.UserService, ms *services.MenuService, ord *services.OrderService, am *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				UserID   string `json:"user_id"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "bad request", nil)
				return
			}
			token, err := us.Login(r.Context(), req.UserID, req.Password)
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
		})

		// ---------- users ----------
		r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				UserID       string `json:"user_id"`
				UserName     string `json:"user_name"`
				Password     string `json:"password"`
				InitialPoint int64  `json:"initial_point"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "bad request", nil)
				return
			}
			u, err := us.Create(r.Context(), req.UserID, req.UserName, req.Password, req.InitialPoint)
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, u)
		})

		// ---------- points ----------
		r.Get("/points", func(w http.ResponseWriter, r *http.Request) {
			uid := r.URL.Query().Get("user_id")
			if ef := validate.Required("user_id", uid); ef != nil {
				httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), ef.Error(), validate.Errs{*ef})
				return
			}
			b, err := us.GetBalance(r.Context(), uid)
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, b)
		})

		// ---------- menus ----------
		r.Get("/menus", func(w http.ResponseWriter, r *http.Request) {
			menus, err := ms.List(r.Context())
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, menus)
		})

		r.Get("/menus/popular", func(w http.ResponseWriter, r *http.Request) {
			days := queryInt(r, "days", 0)
			limit := queryInt(r, "limit", 0)
			items, err := ms.Popular(r.Context(), days, limit)
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, items)
		})

		r.Get("/menus/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "invalid menu id", nil)
				return
			}
			m, err := ms.Get(r.Context(), id)
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, m)
		})

		// ---------- orders (token required on writes) ----------
		r.Group(func(r chi.Router) {
			r.Use(am.Auth)

			r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					UserID   string `json:"user_id"`
					MenuID   int64  `json:"menu_id"`
					Quantity int    `json:"quantity"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "bad request", nil)
					return
				}
				if ef := validate.Required("user_id", req.UserID); ef != nil {
					httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), ef.Error(), validate.Errs{*ef})
					return
				}
				resp, err := ord.PlaceOrder(r.Context(), req.UserID, req.MenuID, req.Quantity)
				if err != nil {
					httpx.WriteAppError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, resp)
			})

			r.Post("/points/charge", func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					UserID string `json:"user_id"`
					Amount int64  `json:"amount"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "bad request", nil)
					return
				}
				if ef := validate.Required("user_id", req.UserID); ef != nil {
					httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), ef.Error(), validate.Errs{*ef})
					return
				}
				resp, err := us.ChargePoint(r.Context(), req.UserID, req.Amount)
				if err != nil {
					httpx.WriteAppError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, resp)
			})
		})

		r.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
			o, err := ord.GetByID(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, o)
		})

		r.Get("/orders", func(w http.ResponseWriter, r *http.Request) {
			uid := r.URL.Query().Get("user_id")
			if ef := validate.Required("user_id", uid); ef != nil {
				httpx.WriteError(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), ef.Error(), validate.Errs{*ef})
				return
			}
			orders, err := ord.ListByUser(r.Context(), uid, queryInt(r, "limit", 50), queryInt(r, "offset", 0))
			if err != nil {
				httpx.WriteAppError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, orders)
		})
	})

	return r
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
