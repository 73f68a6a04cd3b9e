package recommendation

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RecommendationDTO struct {
	CategoryID        int             `json:"categoryId,omitempty"`
	Category          string          `json:"category"`
	RecommendedAmount decimal.Decimal `json:"recommendedAmount"`
	Reason            string          `json:"reason"`
	Confidence        float64         `json:"confidence"`
	HistoricalAverage decimal.Decimal `json:"historicalAverage"`
	Trend             string          `json:"trend"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	recommendations, err := h.service.GetRecommendations(r.Context())
	if err != nil {
		// Recommendations feed dashboards; degrade to an empty list
		// instead of failing the whole page.
		log.Errorf("could not compute recommendations: %v", err)
		recommendations = []Recommendation{}
	}

	dtos := make([]RecommendationDTO, 0, len(recommendations))
	for _, recommendation := range recommendations {
		dtos = append(dtos, RecommendationDTO{
			CategoryID:        recommendation.CategoryID,
			Category:          recommendation.Category,
			RecommendedAmount: recommendation.RecommendedAmount,
			Reason:            recommendation.Reason,
			Confidence:        recommendation.Confidence,
			HistoricalAverage: recommendation.HistoricalAverage,
			Trend:             string(recommendation.Trend),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
