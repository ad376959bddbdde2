package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	pkgAuth "github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/server/http/dto"
	"github.com/dahorta/freshmarket/internal/server/http/middleware"
	testhelpers "github.com/dahorta/freshmarket/internal/test"
	"github.com/dahorta/freshmarket/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsContextKey, pkgAuth.Claims{UserID: id})
	}
}

func asStaff(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsContextKey, pkgAuth.Claims{UserID: id, Staff: true})
	}
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestCurrentClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.ClaimsContextKey, pkgAuth.Claims{UserID: 42, Staff: true})
	claims := CurrentClaims(c)
	if claims.UserID != 42 || !claims.Staff {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterScenarioMatchesE2E(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body := mustJSON(t, dto.AuthRequest{Login: login, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	authHeader := resp.Header().Get("Authorization")
	if authHeader != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	foundCookie := false
	for _, cookie := range cookies {
		if cookie.Name == "freshmarket_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named freshmarket_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			facade: testhelpers.AuthFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "blank credentials",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			body:   mustJSON(t, dto.AuthRequest{}),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrAlreadyExists
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "user", Password: "pass"}),
			status: http.StatusConflict,
		},
		{
			name: "internal error",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", errors.New("boom")
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "user", Password: "pass"}),
			status: http.StatusInternalServerError,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tc.facade).Register, nil, tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthHandlerSessionReportsStaffFlag(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{ParseFn: func(string) (pkgAuth.Claims, error) {
		return pkgAuth.Claims{UserID: 3, Staff: true}, nil
	}}
	body := mustJSON(t, dto.AuthRequest{Login: "manager", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var session dto.SessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if !session.Staff {
		t.Fatalf("expected staff session, got %+v", session)
	}
}

func TestAuthHandlerRegisterTrimsLogin(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, login, _ string) (string, error) {
		if login != "user" {
			t.Fatalf("expected trimmed login, got %q", login)
		}
		return "token", nil
	}}
	body := mustJSON(t, dto.AuthRequest{Login: "  user  ", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(facade).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var session dto.SessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Staff {
		t.Fatalf("a fresh registration must not be staff")
	}
}

func TestAuthHandlerSessionParseFailure(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{ParseFn: func(string) (pkgAuth.Claims, error) {
		return pkgAuth.Claims{}, errors.New("corrupt token")
	}}
	body := mustJSON(t, dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	if len(result.Cookies()) != 0 {
		t.Fatalf("no cookie must be written for an unusable token")
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestCartHandlerView(t *testing.T) {
	facade := testhelpers.CartFacadeStub{CartFn: func(_ context.Context, userID int64) usecase.CartView {
		if userID != 7 {
			t.Fatalf("unexpected user id %d", userID)
		}
		return usecase.CartView{
			Lines: []usecase.LineView{{
				CartLine:       model.CartLine{ProductID: "tomato", Name: "Tomato", Unit: "kg", BasePrice: 10, PromoPrice: 8, IsPromo: true, Quantity: 3},
				EffectivePrice: 8,
				LineTotal:      24,
				PendingRemoval: true,
			}},
			TotalItems: 3,
			Subtotal:   24,
			Savings:    6,
		}
	}}

	resp := performRequest(t, http.MethodGet, "/cart", NewCartHandler(facade).View, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.CartResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].EffectivePrice != 8 || !payload.Items[0].PendingRemoval {
		t.Fatalf("unexpected items %+v", payload.Items)
	}
	if payload.Subtotal != 24 || payload.Savings != 6 {
		t.Fatalf("unexpected totals %+v", payload)
	}
}

func TestCartHandlerAdd(t *testing.T) {
	line := model.CartLine{ProductID: "tomato", BasePrice: 10, Quantity: 1}
	facade := testhelpers.CartFacadeStub{AddProductFn: func(_ context.Context, _ int64, productID string) (usecase.CartMutation, error) {
		if productID != "tomato" {
			t.Fatalf("unexpected product id %q", productID)
		}
		return usecase.CartMutation{Kind: usecase.MutationUpdated, Line: &line}, nil
	}}

	body := mustJSON(t, dto.AddItemRequest{ProductID: "tomato"})
	resp := performRequest(t, http.MethodPost, "/cart/items", NewCartHandler(facade).Add, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.MutationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Result != "updated" || payload.Item == nil || payload.Item.Quantity != 1 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestCartHandlerAddFailures(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/cart/items", handler.Add, asUser(7), []byte("{"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/cart/items", handler.Add, asUser(7), mustJSON(t, dto.AddItemRequest{}), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank product, got %d", resp.Code)
	}

	missing := NewCartHandler(testhelpers.CartFacadeStub{AddProductFn: func(context.Context, int64, string) (usecase.CartMutation, error) {
		return usecase.CartMutation{}, domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodPost, "/cart/items", missing.Add, asUser(7), mustJSON(t, dto.AddItemRequest{ProductID: "ghost"}), jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", resp.Code)
	}
}

func TestCartHandlerAdjustWarns(t *testing.T) {
	line := model.CartLine{ProductID: "tomato", BasePrice: 10, Quantity: 1, MinOrder: 1, Unit: "kg"}
	facade := testhelpers.CartFacadeStub{AdjustQuantityFn: func(_ context.Context, _ int64, _ string, delta float64) (usecase.CartMutation, error) {
		if delta != -1 {
			t.Fatalf("unexpected delta %v", delta)
		}
		return usecase.CartMutation{Kind: usecase.MutationWarned, Warning: "Minimum quantity: 1 kg. Repeat to remove the item.", Line: &line}, nil
	}}

	body := mustJSON(t, dto.AdjustItemRequest{ProductID: "tomato", Delta: -1})
	resp := performRequest(t, http.MethodPatch, "/cart/items", NewCartHandler(facade).Adjust, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.MutationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Result != "warned" || payload.Warning == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Item == nil || !payload.Item.PendingRemoval {
		t.Fatalf("expected pending removal flag on item, got %+v", payload.Item)
	}
}

func TestCartHandlerSetClamped(t *testing.T) {
	line := model.CartLine{ProductID: "tomato", BasePrice: 10, Quantity: 2, MinOrder: 2}
	facade := testhelpers.CartFacadeStub{SetQuantityFn: func(context.Context, int64, string, float64) (usecase.CartMutation, error) {
		return usecase.CartMutation{Kind: usecase.MutationUpdated, Clamped: usecase.ClampMin, Line: &line}, nil
	}}

	body := mustJSON(t, dto.SetItemRequest{ProductID: "tomato", Quantity: 0.5})
	resp := performRequest(t, http.MethodPut, "/cart/items", NewCartHandler(facade).Set, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.MutationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Clamped != "min" || payload.Item == nil || payload.Item.Quantity != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestCartHandlerRemove(t *testing.T) {
	var removed string
	facade := testhelpers.CartFacadeStub{RemoveProductFn: func(_ context.Context, _ int64, productID string) error {
		removed = productID
		return nil
	}}
	router := gin.New()
	handler := NewCartHandler(facade)
	router.DELETE("/cart/items/:productID", func(c *gin.Context) {
		asUser(7)(c)
		handler.Remove(c)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart/items/tomato", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if removed != "tomato" {
		t.Fatalf("expected tomato removed, got %q", removed)
	}

	missing := NewCartHandler(testhelpers.CartFacadeStub{RemoveProductFn: func(context.Context, int64, string) error {
		return domainErrors.ErrNotFound
	}})
	router = gin.New()
	router.DELETE("/cart/items/:productID", func(c *gin.Context) {
		asUser(7)(c)
		missing.Remove(c)
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart/items/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCartHandlerClear(t *testing.T) {
	var cleared int64
	facade := testhelpers.CartFacadeStub{ClearCartFn: func(_ context.Context, userID int64) {
		cleared = userID
	}}
	resp := performRequest(t, http.MethodDelete, "/cart", NewCartHandler(facade).Clear, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if cleared != 7 {
		t.Fatalf("expected user 7 cleared, got %d", cleared)
	}
}

func TestCartHandlerEstimate(t *testing.T) {
	quote := model.DeliveryEstimate{DistanceKM: 15, EstimatedTime: "45 minutos", Fee: 15, MinOrderValue: 150}
	facade := testhelpers.CartFacadeStub{EstimateDeliveryFn: func(_ context.Context, _ int64, zipcode string) (model.DeliveryEstimate, error) {
		if zipcode != "01310-100" {
			t.Fatalf("unexpected zipcode %q", zipcode)
		}
		return quote, nil
	}}
	body := mustJSON(t, dto.EstimateRequest{Zipcode: "01310-100"})
	resp := performRequest(t, http.MethodPost, "/cart/estimate", NewCartHandler(facade).Estimate, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.EstimateResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.DistanceKM != 15 || payload.DeliveryFee != 15 || payload.MinOrderValue != 150 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestCartHandlerEstimateFailures(t *testing.T) {
	invalid := NewCartHandler(testhelpers.CartFacadeStub{EstimateDeliveryFn: func(context.Context, int64, string) (model.DeliveryEstimate, error) {
		return model.DeliveryEstimate{}, domainErrors.ErrInvalidZipcode
	}})
	body := mustJSON(t, dto.EstimateRequest{Zipcode: "bogus"})
	resp := performRequest(t, http.MethodPost, "/cart/estimate", invalid.Estimate, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid zipcode, got %d", resp.Code)
	}

	below := NewCartHandler(testhelpers.CartFacadeStub{EstimateDeliveryFn: func(context.Context, int64, string) (model.DeliveryEstimate, error) {
		quote := model.DeliveryEstimate{DistanceKM: 30, Fee: 25, MinOrderValue: 200}
		return quote, fmt.Errorf("%w: minimum for this region is 200.00", domainErrors.ErrBelowMinimumOrder)
	}})
	body = mustJSON(t, dto.EstimateRequest{Zipcode: "01310-900"})
	resp = performRequest(t, http.MethodPost, "/cart/estimate", below.Estimate, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 below minimum, got %d", resp.Code)
	}
	var payload dto.EstimateResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.MinOrderValue != 200 {
		t.Fatalf("expected quote in below-minimum response, got %+v", payload)
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{CheckoutFn: func(_ context.Context, userID int64, address model.Address, contact model.ContactInfo, notes string) (*model.Order, error) {
		if userID != 7 || address.Zipcode != "01310-100" || contact.Name != "Maria" || notes != "ring the bell" {
			t.Fatalf("unexpected checkout args: %d %+v %+v %q", userID, address, contact, notes)
		}
		return &model.Order{ID: "o1", UserID: 7, Number: "PED-2026-000123", Status: model.OrderStatusPending, Total: 120}, nil
	}}

	body := mustJSON(t, dto.CheckoutRequest{
		Address: dto.AddressPayload{Street: "Av. Paulista", Number: "1000", City: "Sao Paulo", State: "SP", Zipcode: "01310-100"},
		Contact: dto.ContactPayload{Name: "Maria", Email: "maria@example.com", Phone: "11999990000"},
		Notes:   "ring the bell",
	})
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Checkout, asUser(7), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var payload dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Number != "PED-2026-000123" || payload.Status != "pending" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestOrderHandlerCheckoutFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "empty cart", err: domainErrors.ErrEmptyCart, status: http.StatusBadRequest},
		{name: "invalid zipcode", err: domainErrors.ErrInvalidZipcode, status: http.StatusUnprocessableEntity},
		{name: "below minimum", err: domainErrors.ErrBelowMinimumOrder, status: http.StatusUnprocessableEntity},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	body := mustJSON(t, dto.CheckoutRequest{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, model.Address, model.ContactInfo, string) (*model.Order, error) {
				return nil, tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Checkout, asUser(7), body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(_ context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
		if userID != 7 {
			t.Fatalf("unexpected user %d", userID)
		}
		if status == nil || *status != model.OrderStatusShipped {
			t.Fatalf("expected shipped filter, got %v", status)
		}
		return []model.Order{{ID: "o1", Status: model.OrderStatusShipped}}, nil
	}}
	router := gin.New()
	handler := NewOrderHandler(facade)
	router.GET("/orders", func(c *gin.Context) {
		asUser(7)(c)
		handler.List(c)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?status=em_transporte", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?status=bogus", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}

	empty := NewOrderHandler(testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64, *model.OrderStatus) ([]model.Order, error) {
		return nil, nil
	}})
	resp := performRequest(t, http.MethodGet, "/orders", empty.List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for no orders, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, orderID string) (*model.Order, error) {
		return &model.Order{ID: orderID, UserID: 7, Status: model.OrderStatusPending}, nil
	}}
	handler := NewOrderHandler(facade)

	router := gin.New()
	router.GET("/orders/:orderID", func(c *gin.Context) {
		asUser(7)(c)
		handler.Get(c)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/o1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", w.Code)
	}

	router = gin.New()
	router.GET("/orders/:orderID", func(c *gin.Context) {
		asUser(8)(c)
		handler.Get(c)
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/o1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d", w.Code)
	}

	router = gin.New()
	router.GET("/orders/:orderID", func(c *gin.Context) {
		asStaff(9)(c)
		handler.Get(c)
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/o1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", w.Code)
	}

	missing := NewOrderHandler(testhelpers.OrderFacadeStub{OrderFn: func(context.Context, string) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}})
	router = gin.New()
	router.GET("/orders/:orderID", func(c *gin.Context) {
		asUser(7)(c)
		missing.Get(c)
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing order, got %d", w.Code)
	}
}

func TestFulfillmentHandlerTransition(t *testing.T) {
	facade := testhelpers.FulfillmentFacadeStub{TransitionOrderFn: func(_ context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
		if target != model.OrderStatusConfirmed {
			t.Fatalf("unexpected target %s", target)
		}
		return &model.Order{ID: orderID, Status: target}, nil
	}}
	handler := NewFulfillmentHandler(facade)

	router := gin.New()
	router.POST("/orders/:orderID/status", func(c *gin.Context) {
		asStaff(1)(c)
		handler.Transition(c)
	})
	body := mustJSON(t, dto.TransitionRequest{Status: "confirmed"})
	req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload dto.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "confirmed" {
		t.Fatalf("unexpected status %q", payload.Status)
	}
}

func TestFulfillmentHandlerTransitionFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "unknown status", body: mustJSONRaw(`{"status":"bogus"}`), status: http.StatusBadRequest},
		{name: "invalid transition", body: mustJSONRaw(`{"status":"delivered"}`), err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "picking incomplete", body: mustJSONRaw(`{"status":"shipped"}`), err: domainErrors.ErrPickingIncomplete, status: http.StatusConflict},
		{name: "missing order", body: mustJSONRaw(`{"status":"confirmed"}`), err: domainErrors.ErrNotFound, status: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.FulfillmentFacadeStub{TransitionOrderFn: func(context.Context, string, model.OrderStatus) (*model.Order, error) {
				return nil, tc.err
			}}
			handler := NewFulfillmentHandler(facade)
			router := gin.New()
			router.POST("/orders/:orderID/status", func(c *gin.Context) {
				asStaff(1)(c)
				handler.Transition(c)
			})
			req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", bytes.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func mustJSONRaw(s string) []byte {
	return []byte(s)
}

func TestFulfillmentHandlerPicking(t *testing.T) {
	facade := testhelpers.FulfillmentFacadeStub{TogglePickedFn: func(orderID string, lineIndex int) (model.PickingProgress, error) {
		return model.PickingProgress{OrderID: orderID, Picked: []int{lineIndex}, Total: 2}, nil
	}}
	handler := NewFulfillmentHandler(facade)

	router := gin.New()
	router.POST("/orders/:orderID/picking/toggle", func(c *gin.Context) {
		asStaff(1)(c)
		handler.TogglePicked(c)
	})
	body := mustJSON(t, dto.PickingToggleRequest{Line: 1})
	req := httptest.NewRequest(http.MethodPost, "/orders/o1/picking/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload dto.PickingProgressResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 2 || len(payload.Picked) != 1 || payload.Complete {
		t.Fatalf("unexpected payload %+v", payload)
	}

	badIndex := NewFulfillmentHandler(testhelpers.FulfillmentFacadeStub{TogglePickedFn: func(string, int) (model.PickingProgress, error) {
		return model.PickingProgress{}, domainErrors.ErrInvalidLineIndex
	}})
	router = gin.New()
	router.POST("/orders/:orderID/picking/toggle", func(c *gin.Context) {
		asStaff(1)(c)
		badIndex.TogglePicked(c)
	})
	req = httptest.NewRequest(http.MethodPost, "/orders/o1/picking/toggle", bytes.NewReader(mustJSON(t, dto.PickingToggleRequest{Line: 9})))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	complete := NewFulfillmentHandler(testhelpers.FulfillmentFacadeStub{MarkAllPickedFn: func(orderID string) (model.PickingProgress, error) {
		return model.PickingProgress{OrderID: orderID, Picked: []int{0, 1}, Total: 2}, nil
	}})
	router = gin.New()
	router.POST("/orders/:orderID/picking/complete", func(c *gin.Context) {
		asStaff(1)(c)
		complete.MarkAllPicked(c)
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/o1/picking/complete", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	payload = dto.PickingProgressResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Complete {
		t.Fatalf("expected complete progress, got %+v", payload)
	}
}

func TestFulfillmentHandlerDeliverBatch(t *testing.T) {
	facade := testhelpers.FulfillmentFacadeStub{DeliverBatchFn: func(_ context.Context, orderIDs []string) usecase.BatchResult {
		return usecase.BatchResult{
			Succeeded: []string{orderIDs[0]},
			Failed:    []usecase.BatchFailure{{OrderID: orderIDs[1], Reason: "invalid status transition: pending to delivered"}},
		}
	}}
	handler := NewFulfillmentHandler(facade)

	body := mustJSON(t, dto.DeliverBatchRequest{OrderIDs: []string{"o1", "o2"}})
	resp := performRequest(t, http.MethodPost, "/deliveries", handler.DeliverBatch, asStaff(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.DeliverBatchResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Delivered) != 1 || len(payload.Failed) != 1 || payload.Failed[0].OrderID != "o2" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	resp = performRequest(t, http.MethodPost, "/deliveries", handler.DeliverBatch, asStaff(1), mustJSON(t, dto.DeliverBatchRequest{}), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", resp.Code)
	}
}
