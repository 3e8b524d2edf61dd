package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jungmin-dev/coffee-order-backend/internal/auth"
	"github.com/jungmin-dev/coffee-order-backend/internal/collector"
	"github.com/jungmin-dev/coffee-order-backend/internal/config"
	"github.com/jungmin-dev/coffee-order-backend/internal/middleware"
	"github.com/jungmin-dev/coffee-order-backend/internal/repository/memory"
	"github.com/jungmin-dev/coffee-order-backend/internal/services"
	"github.com/jungmin-dev/coffee-order-backend/internal/worker"
)

type apiFixture struct {
	srv *httptest.Server
}

// newAPIFixture boots the full router over the memory store with the stock
// menu catalog installed.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	repos := memory.NewRepositories()
	tm := auth.NewTokenManager("test-secret", "test", time.Hour)
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)

	us := services.NewUserService(repos.Users, tm)
	ms := services.NewMenuService(repos.Menus, repos.Orders, 7, 3)
	require.NoError(t, ms.EnsureDefaultMenus(context.Background()))
	ord := services.NewOrderService(repos.Repos(), repos, collector.Nop{}, wp)

	cfg := config.Config{Env: "test", RateRPS: 1000}
	h := NewRouter(cfg, us, ms, ord, middleware.NewAuthMiddleware(tm))

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &apiFixture{srv: srv}
}

func (f *apiFixture) post(t *testing.T, path, token string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, f.srv.URL+path, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type errBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// register creates a user and returns a fresh access token.
func (f *apiFixture) register(t *testing.T, userID string, point int64) string {
	t.Helper()
	resp := f.post(t, "/api/v1/users", "", map[string]interface{}{
		"user_id": userID, "password": "pw1234", "initial_point": point,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.post(t, "/api/v1/auth/login", "", map[string]string{
		"user_id": userID, "password": "pw1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[map[string]string](t, resp)["token"]
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.get(t, "/health")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChargeAndBalance(t *testing.T) {
	f := newAPIFixture(t)
	token := f.register(t, "u1", 10000)

	bresp := f.get(t, "/api/v1/points?user_id=u1")
	b := decode[map[string]interface{}](t, bresp)
	assert.Equal(t, float64(10000), b["current_point"])

	cresp := f.post(t, "/api/v1/points/charge", token, map[string]interface{}{
		"user_id": "u1", "amount": 2000,
	})
	require.Equal(t, http.StatusOK, cresp.StatusCode)
	c := decode[map[string]interface{}](t, cresp)
	assert.Equal(t, float64(12000), c["current_point"])
}

func TestOrderRoundTrip(t *testing.T) {
	f := newAPIFixture(t)
	token := f.register(t, "u1", 10000)

	mresp := f.get(t, "/api/v1/menus")
	menus := decode[[]map[string]interface{}](t, mresp)
	require.Len(t, menus, 5)
	assert.Equal(t, "Americano", menus[0]["name"])
	menuID := int64(menus[0]["id"].(float64))

	oresp := f.post(t, "/api/v1/orders", token, map[string]interface{}{
		"user_id": "u1", "menu_id": menuID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, oresp.StatusCode)
	o := decode[map[string]interface{}](t, oresp)
	assert.Equal(t, "completed", o["status"])
	assert.Equal(t, float64(6000), o["total_price"])
	assert.Equal(t, float64(4000), o["remaining_point"])
	orderID := o["order_id"].(string)

	gresp := f.get(t, "/api/v1/orders/"+orderID)
	got := decode[map[string]interface{}](t, gresp)
	assert.Equal(t, orderID, got["order_id"])

	lresp := f.get(t, "/api/v1/orders?user_id=u1")
	list := decode[[]map[string]interface{}](t, lresp)
	require.Len(t, list, 1)

	presp := f.get(t, "/api/v1/menus/popular")
	popular := decode[[]map[string]interface{}](t, presp)
	require.Len(t, popular, 1)
	assert.Equal(t, float64(1), popular[0]["order_count"])
}

func TestErrorStatusMapping(t *testing.T) {
	f := newAPIFixture(t)
	token := f.register(t, "u1", 1000)

	cases := []struct {
		name       string
		run        func() *http.Response
		wantStatus int
		wantCode   string
	}{
		{
			name: "missing token",
			run: func() *http.Response {
				return f.post(t, "/api/v1/orders", "", map[string]interface{}{"user_id": "u1", "menu_id": 1, "quantity": 1})
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name: "garbage token",
			run: func() *http.Response {
				return f.post(t, "/api/v1/orders", "nope", map[string]interface{}{"user_id": "u1", "menu_id": 1, "quantity": 1})
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name: "menu not found",
			run: func() *http.Response {
				return f.post(t, "/api/v1/orders", token, map[string]interface{}{"user_id": "u1", "menu_id": 999, "quantity": 1})
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "MENU_NOT_FOUND",
		},
		{
			name: "insufficient balance",
			run: func() *http.Response {
				return f.post(t, "/api/v1/orders", token, map[string]interface{}{"user_id": "u1", "menu_id": 1, "quantity": 100})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INSUFFICIENT_BALANCE",
		},
		{
			name: "unknown user balance",
			run: func() *http.Response {
				return f.get(t, "/api/v1/points?user_id=ghost")
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "USER_NOT_FOUND",
		},
		{
			name: "order not found",
			run: func() *http.Response {
				return f.get(t, "/api/v1/orders/no-such-order")
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "ORDER_NOT_FOUND",
		},
		{
			name: "duplicate user",
			run: func() *http.Response {
				return f.post(t, "/api/v1/users", "", map[string]interface{}{"user_id": "u1", "password": "pw1234"})
			},
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_USER",
		},
		{
			name: "invalid charge amount",
			run: func() *http.Response {
				return f.post(t, "/api/v1/points/charge", token, map[string]interface{}{"user_id": "u1", "amount": -5})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name: "wrong password",
			run: func() *http.Response {
				return f.post(t, "/api/v1/auth/login", "", map[string]string{"user_id": "u1", "password": "nope"})
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := tc.run()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			body := decode[errBody](t, resp)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

func TestListOrdersRequiresUserID(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.get(t, "/api/v1/orders")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errBody](t, resp)
	assert.Equal(t, "INVALID_INPUT", body.Code)
	assert.Equal(t, "user_id: required", body.Error)
}
