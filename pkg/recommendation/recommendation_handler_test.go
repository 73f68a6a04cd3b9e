package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingService struct {
	err error
}

func (s *failingService) GetRecommendations(context.Context) ([]Recommendation, error) {
	return nil, s.err
}

func TestHandler_GetRecommendations_DegradesToEmptyListOnFailure(t *testing.T) {
	handler := NewHandler(&failingService{err: errors.New("ledger unavailable")})

	req := httptest.NewRequest(http.MethodGet, "/api/budget/recommendations", nil)
	recorder := httptest.NewRecorder()
	handler.GetRecommendations(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var dtos []RecommendationDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&dtos))
	assert.Empty(t, dtos)
}
