package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	ID         int             `json:"id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate,omitempty"`
	CategoryID int             `json:"categoryId,omitempty"`
	Active     bool            `json:"active"`
}

type BudgetProgressDTO struct {
	BudgetDTO
	Category  string          `json:"category"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  float64         `json:"progress"`
	Status    string          `json:"status"`
}

// BudgetUpdateDTO carries a partial update; absent fields keep current
// values. A categoryId of 0 resets the scope to all categories.
type BudgetUpdateDTO struct {
	Amount     *decimal.Decimal `json:"amount"`
	Period     *string          `json:"period"`
	StartDate  *time.Time       `json:"startDate"`
	CategoryID *int             `json:"categoryId"`
	Active     *bool            `json:"active"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")

	var budgetDTO BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdBudget, err := handler.budgetService.Create(r.Context(), DTOToBudget(budgetDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(createdBudget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgets, err := handler.budgetService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BudgetProgressDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, ProgressToDTO(budget))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	progress, err := handler.budgetService.Get(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProgressToDTO(progress)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var updateDTO BudgetUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updatedBudget, err := handler.budgetService.Update(r.Context(), budgetId, DTOToUpdate(updateDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(updatedBudget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.budgetService.Delete(r.Context(), budgetId); err != nil {
		writeServiceError(w, err)
		return
	}

	// Return 204 No Content for successful deletion with no response body
	w.WriteHeader(http.StatusNoContent)
}

func (handler *BudgetHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	toggledBudget, err := handler.budgetService.ToggleActive(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(toggledBudget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func pathId(r *http.Request) (int, error) {
	id64, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return int(id64), err
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrBudgetNotFound):
		http.Error(w, "Budget not found", http.StatusNotFound)
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func BudgetToDTO(budget Budget) BudgetDTO {
	categoryId, _ := budget.Scope.CategoryId()
	return BudgetDTO{
		ID:         budget.ID,
		Amount:     budget.Amount,
		Period:     string(budget.Period),
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
		CategoryID: categoryId,
		Active:     budget.Active,
	}
}

func ProgressToDTO(progress BudgetProgress) BudgetProgressDTO {
	return BudgetProgressDTO{
		BudgetDTO: BudgetToDTO(progress.Budget),
		Category:  progress.CategoryName,
		Spent:     progress.Spent,
		Remaining: progress.Remaining,
		Progress:  progress.Progress,
		Status:    string(progress.Status),
	}
}

func DTOToBudget(budgetDTO BudgetDTO) Budget {
	scope := TotalScope()
	if budgetDTO.CategoryID != 0 {
		scope = CategoryScope(budgetDTO.CategoryID)
	}
	return Budget{
		ID:        budgetDTO.ID,
		Amount:    budgetDTO.Amount,
		Period:    Period(budgetDTO.Period),
		StartDate: budgetDTO.StartDate,
		EndDate:   budgetDTO.EndDate,
		Scope:     scope,
		Active:    budgetDTO.Active,
	}
}

func DTOToUpdate(updateDTO BudgetUpdateDTO) BudgetUpdate {
	update := BudgetUpdate{
		Amount:    updateDTO.Amount,
		StartDate: updateDTO.StartDate,
		Active:    updateDTO.Active,
	}
	if updateDTO.Period != nil {
		period := Period(*updateDTO.Period)
		update.Period = &period
	}
	if updateDTO.CategoryID != nil {
		scope := TotalScope()
		if *updateDTO.CategoryID != 0 {
			scope = CategoryScope(*updateDTO.CategoryID)
		}
		update.Scope = &scope
	}
	return update
}
