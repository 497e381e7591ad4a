package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/manav-coupa/store-management/internal/adapter/http/dto"
	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ClearAll(ctx context.Context) error
	GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]*domain.Transaction, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Transaction, error)
	ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error)
	SearchTransactions(ctx context.Context, term string, txType *domain.TransactionType) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.CreateTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction ID", err.Error())
		return
	}

	txn, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists all transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionUC.ListTransactions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	h.writeList(w, transactions)
}

// ListByCustomer lists a customer's transactions.
func (h *TransactionHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseIDParam(r, "customerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", err.Error())
		return
	}

	transactions, err := h.transactionUC.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	h.writeList(w, transactions)
}

// ListByType lists transactions of one type.
func (h *TransactionHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	txType, err := domain.ParseTransactionType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction type", err.Error())
		return
	}

	transactions, err := h.transactionUC.ListByType(r.Context(), txType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	h.writeList(w, transactions)
}

// ListByDateRange lists transactions dated within [from, to]. Both bounds
// are RFC 3339 dates.
func (h *TransactionHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	transactions, err := h.transactionUC.ListByDateRange(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	h.writeList(w, transactions)
}

// Search filters transactions by customer name/mobile and optional type.
func (h *TransactionHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	var txType *domain.TransactionType
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := domain.ParseTransactionType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid transaction type", err.Error())
			return
		}
		txType = &parsed
	}

	transactions, err := h.transactionUC.SearchTransactions(r.Context(), term, txType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search transactions", err.Error())
		return
	}

	h.writeList(w, transactions)
}

// Update amends a transaction's type, amount, description, or date.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction ID", err.Error())
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.UpdateTransaction(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete removes a transaction and reconciles its customer.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction ID", err.Error())
		return
	}

	if err := h.transactionUC.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearAll deletes every transaction without touching customer aggregates.
func (h *TransactionHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionUC.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear transactions", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) writeList(w http.ResponseWriter, transactions []*domain.Transaction) {
	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
