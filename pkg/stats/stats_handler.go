package stats

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type SummaryDTO struct {
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	TotalRemaining  decimal.Decimal `json:"totalRemaining"`
	OverallProgress float64         `json:"overallProgress"`
	ActiveCount     int             `json:"activeCount"`
	ExceededCount   int             `json:"exceededCount"`
	WarningCount    int             `json:"warningCount"`
	OnTrackCount    int             `json:"onTrackCount"`
}

type StatsHandler struct {
	statsService StatsService
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{statsService}
}

func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := handler.statsService.GetStats(r.Context())
	if err != nil {
		// Stats feed dashboards; degrade to a zero-filled summary instead
		// of failing the whole page.
		log.Errorf("could not compute stats: %v", err)
		summary = Summary{
			TotalBudget:    decimal.Zero,
			TotalSpent:     decimal.Zero,
			TotalRemaining: decimal.Zero,
		}
	}

	dto := SummaryDTO{
		TotalBudget:     summary.TotalBudget,
		TotalSpent:      summary.TotalSpent,
		TotalRemaining:  summary.TotalRemaining,
		OverallProgress: summary.OverallProgress,
		ActiveCount:     summary.ActiveCount,
		ExceededCount:   summary.ExceededCount,
		WarningCount:    summary.WarningCount,
		OnTrackCount:    summary.OnTrackCount,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
