package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/adapter/http/dto"
	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

type stubCustomerService struct {
	CreateCustomerFunc      func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error)
	UpdateCustomerFunc      func(ctx context.Context, id int64, input usecase.UpdateCustomerInput) (*domain.Customer, error)
	DeleteCustomerFunc      func(ctx context.Context, id int64) error
	ClearAllFunc            func(ctx context.Context) error
	GetCustomerFunc         func(ctx context.Context, id int64) (*domain.Customer, error)
	GetCustomerByMobileFunc func(ctx context.Context, mobile string) (*domain.Customer, error)
	ListCustomersFunc       func(ctx context.Context) ([]*domain.Customer, error)
	SearchCustomersFunc     func(ctx context.Context, term string) ([]*domain.Customer, error)
	OutstandingBalanceFunc  func(ctx context.Context) ([]*domain.Customer, error)
	DashboardStatsFunc      func(ctx context.Context) (*domain.DashboardStats, error)
}

func (s *stubCustomerService) CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
	return s.CreateCustomerFunc(ctx, input)
}

func (s *stubCustomerService) UpdateCustomer(ctx context.Context, id int64, input usecase.UpdateCustomerInput) (*domain.Customer, error) {
	return s.UpdateCustomerFunc(ctx, id, input)
}

func (s *stubCustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.DeleteCustomerFunc(ctx, id)
}

func (s *stubCustomerService) ClearAll(ctx context.Context) error {
	return s.ClearAllFunc(ctx)
}

func (s *stubCustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.GetCustomerFunc(ctx, id)
}

func (s *stubCustomerService) GetCustomerByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	return s.GetCustomerByMobileFunc(ctx, mobile)
}

func (s *stubCustomerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.ListCustomersFunc(ctx)
}

func (s *stubCustomerService) SearchCustomers(ctx context.Context, term string) ([]*domain.Customer, error) {
	return s.SearchCustomersFunc(ctx, term)
}

func (s *stubCustomerService) OutstandingBalance(ctx context.Context) ([]*domain.Customer, error) {
	return s.OutstandingBalanceFunc(ctx)
}

func (s *stubCustomerService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.DashboardStatsFunc(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCustomerHandlerCreate(t *testing.T) {
	svc := &stubCustomerService{
		CreateCustomerFunc: func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
			return &domain.Customer{ID: 1, Name: input.Name, Mobile: input.Mobile}, nil
		},
	}
	h := NewCustomerHandler(svc)

	body := strings.NewReader(`{"name":"Ramesh","mobile":"9876543210"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", body)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.CustomerResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID != 1 || resp.Name != "Ramesh" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCustomerHandlerCreateDuplicateMobile(t *testing.T) {
	svc := &stubCustomerService{
		CreateCustomerFunc: func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
			return nil, domain.ErrDuplicateMobile
		},
	}
	h := NewCustomerHandler(svc)

	body := strings.NewReader(`{"name":"Ramesh","mobile":"9876543210"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", body)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestCustomerHandlerCreateBadBody(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader("{"))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCustomerHandlerGetNotFound(t *testing.T) {
	svc := &stubCustomerService{
		GetCustomerFunc: func(ctx context.Context, id int64) (*domain.Customer, error) {
			return nil, domain.ErrCustomerNotFound
		},
	}
	h := NewCustomerHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/customers/404", nil), "id", "404")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCustomerHandlerGetInvalidID(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/customers/abc", nil), "id", "abc")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCustomerHandlerDashboardStats(t *testing.T) {
	svc := &stubCustomerService{
		DashboardStatsFunc: func(ctx context.Context) (*domain.DashboardStats, error) {
			return &domain.DashboardStats{
				TotalCredit:    decimal.NewFromInt(100),
				TotalDebit:     decimal.NewFromInt(40),
				NetBalance:     decimal.NewFromInt(60),
				TotalCustomers: 2,
			}, nil
		},
	}
	h := NewCustomerHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/dashboard-stats", nil)
	rr := httptest.NewRecorder()

	h.DashboardStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["netBalance"] != "60" {
		t.Fatalf("expected netBalance 60, got %v", resp["netBalance"])
	}
}

func TestCustomerHandlerDelete(t *testing.T) {
	svc := &stubCustomerService{
		DeleteCustomerFunc: func(ctx context.Context, id int64) error {
			if id != 7 {
				t.Fatalf("expected id=7, got %d", id)
			}
			return nil
		},
	}
	h := NewCustomerHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/customers/7", nil), "id", "7")
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}
