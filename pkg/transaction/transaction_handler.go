package transaction

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const defaultRecentLimit = 50

type TransactionDTO struct {
	ID          int             `json:"id,omitempty"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CategoryID  int             `json:"categoryId,omitempty"`
	Description string          `json:"description,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new transaction")
	w.Header().Set("Content-Type", "application/json")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Amount.Sign() <= 0 {
		http.Error(w, "transaction amount must be positive", http.StatusBadRequest)
		return
	}
	if dto.Date.IsZero() {
		http.Error(w, "transaction date is required", http.StatusBadRequest)
		return
	}

	recorded, err := h.service.Record(r.Context(), dtoToTransaction(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(recorded)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := defaultRecentLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	transactions, err := h.service.GetRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, transaction := range transactions {
		dtos = append(dtos, transactionToDTO(transaction))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func transactionToDTO(transaction Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          transaction.ID,
		Kind:        string(transaction.Kind),
		Amount:      transaction.Amount,
		Date:        transaction.Date,
		CategoryID:  transaction.CategoryID,
		Description: transaction.Description,
	}
}

func dtoToTransaction(dto TransactionDTO) Transaction {
	return Transaction{
		ID:          dto.ID,
		Kind:        Kind(dto.Kind),
		Amount:      dto.Amount,
		Date:        dto.Date,
		CategoryID:  dto.CategoryID,
		Description: dto.Description,
	}
}
