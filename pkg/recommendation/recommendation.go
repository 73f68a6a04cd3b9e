package recommendation

import "github.com/shopspring/decimal"

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Recommendation is a suggested monthly budget amount for one expense
// category, derived from trailing spending history.
type Recommendation struct {
	CategoryID        int
	Category          string
	RecommendedAmount decimal.Decimal
	Reason            string
	// Confidence is bounded and inversely related to spending
	// variability: consistent spending scores high, erratic spending low.
	Confidence        float64
	HistoricalAverage decimal.Decimal
	Trend             Trend
}
