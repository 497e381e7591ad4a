package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manav-coupa/store-management/internal/adapter/http/dto"
	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

// CustomerService defines the behavior needed by CustomerHandler.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input usecase.UpdateCustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	ClearAll(ctx context.Context) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetCustomerByMobile(ctx context.Context, mobile string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	SearchCustomers(ctx context.Context, term string) ([]*domain.Customer, error)
	OutstandingBalance(ctx context.Context) ([]*domain.Customer, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customerUC CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerUC CustomerService) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC}
}

// Create creates a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.CreateCustomer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create customer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", err.Error())
		return
	}

	customer, err := h.customerUC.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get customer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// GetByMobile retrieves a customer by mobile number.
func (h *CustomerHandler) GetByMobile(w http.ResponseWriter, r *http.Request) {
	mobile := chi.URLParam(r, "mobile")
	if mobile == "" {
		writeError(w, http.StatusBadRequest, "missing mobile number", "")
		return
	}

	customer, err := h.customerUC.GetCustomerByMobile(r.Context(), mobile)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get customer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// List lists all customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerUC.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCustomersResponse{
		Customers: dto.CustomersFromDomain(customers),
		Total:     int64(len(customers)),
	})
}

// Search searches customers by name or mobile.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	customers, err := h.customerUC.SearchCustomers(r.Context(), term)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCustomersResponse{
		Customers: dto.CustomersFromDomain(customers),
		Total:     int64(len(customers)),
	})
}

// Outstanding lists customers with a non-zero balance, credits first.
func (h *CustomerHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerUC.OutstandingBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list outstanding balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCustomersResponse{
		Customers: dto.CustomersFromDomain(customers),
		Total:     int64(len(customers)),
	})
}

// DashboardStats returns ledger-wide aggregates.
func (h *CustomerHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.customerUC.DashboardStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Update updates a customer's name and mobile.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", err.Error())
		return
	}

	var req dto.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.UpdateCustomer(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update customer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// Delete deletes a customer and its transactions.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", err.Error())
		return
	}

	if err := h.customerUC.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete customer", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearAll deletes every customer and transaction.
func (h *CustomerHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.customerUC.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear customers", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
