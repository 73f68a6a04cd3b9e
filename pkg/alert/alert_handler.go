package alert

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type AlertDTO struct {
	Kind     string  `json:"kind"`
	BudgetID int     `json:"budgetId"`
	Category string  `json:"category"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	alerts, err := h.service.GetAlerts(r.Context())
	if err != nil {
		// Alerts feed dashboards; degrade to an empty list instead of
		// failing the whole page.
		log.Errorf("could not compute alerts: %v", err)
		alerts = []Alert{}
	}

	dtos := make([]AlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		dtos = append(dtos, AlertDTO{
			Kind:     string(alert.Kind),
			BudgetID: alert.BudgetID,
			Category: alert.Category,
			Message:  alert.Message,
			Progress: alert.Progress,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
