package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dahorta/freshmarket/internal/domain/model"
	pkgAuth "github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/server/http/handlers"
	testhelpers "github.com/dahorta/freshmarket/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.MarketFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(context.Context, int64, *model.OrderStatus) ([]model.Order, error) {
				return []model.Order{{ID: "o1", Number: "PED-2026-000001", Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
			},
		},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"login": "user", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for cart without token, got %d", resp.Code)
	}
}

func TestSetupAdminRoutesRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	customer := testhelpers.MarketFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			ParseFn: func(string) (pkgAuth.Claims, error) { return pkgAuth.Claims{UserID: 1}, nil },
		},
	}
	engine := Setup(customer, logger)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-staff, got %d", resp.Code)
	}

	staff := testhelpers.MarketFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			ParseFn: func(string) (pkgAuth.Claims, error) { return pkgAuth.Claims{UserID: 2, Staff: true}, nil },
		},
	}
	engine = Setup(staff, logger)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for staff, got %d", resp.Code)
	}
}

var _ handlers.MarketFacade = (*testhelpers.MarketFacadeStub)(nil)
