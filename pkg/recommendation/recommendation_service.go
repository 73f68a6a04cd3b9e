package recommendation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/category"
	"github.com/pennywise/pennywise/pkg/transaction"
	"github.com/pennywise/pennywise/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const uncategorizedLabel = "Uncategorized"

type Service interface {
	GetRecommendations(ctx context.Context) ([]Recommendation, error)
}

type ServiceImpl struct {
	transactions transaction.Repo
	categories   category.Service
	clock        utils.Clock
	policy       config.Recommendation
}

func NewRecommendationService(
	transactions transaction.Repo,
	categories category.Service,
	clock utils.Clock,
	policy config.Recommendation,
) *ServiceImpl {
	return &ServiceImpl{
		transactions: transactions,
		categories:   categories,
		clock:        clock,
		policy:       policy,
	}
}

// GetRecommendations analyzes the current user's expenses over the
// trailing window, grouped by category, and suggests a monthly budget
// amount per category. Results are sorted by confidence and truncated
// to the configured limit.
func (s *ServiceImpl) GetRecommendations(ctx context.Context) ([]Recommendation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	since := s.clock.Now().AddDate(0, -s.policy.WindowMonths, 0)
	expenses, err := s.transactions.FindExpensesSince(ctx, userId, since)
	if err != nil {
		return nil, fmt.Errorf("could not read expense history: %w", err)
	}

	names, err := s.categories.NamesById(ctx)
	if err != nil {
		log.Warnf("could not resolve category names: %v", err)
		names = map[int]string{}
	}

	// Group transactions per category; FindExpensesSince returns them in
	// date order, which the trend slices below rely on.
	byCategory := make(map[int][]transaction.Transaction)
	for _, expense := range expenses {
		byCategory[expense.CategoryID] = append(byCategory[expense.CategoryID], expense)
	}

	recommendations := make([]Recommendation, 0, len(byCategory))
	for categoryId, categoryExpenses := range byCategory {
		name := names[categoryId]
		if name == "" {
			name = uncategorizedLabel
		}
		recommendations = append(recommendations, s.analyze(categoryId, name, categoryExpenses))
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Confidence != recommendations[j].Confidence {
			return recommendations[i].Confidence > recommendations[j].Confidence
		}
		return recommendations[i].Category < recommendations[j].Category
	})
	if len(recommendations) > s.policy.Limit {
		recommendations = recommendations[:s.policy.Limit]
	}
	return recommendations, nil
}

func (s *ServiceImpl) analyze(categoryId int, name string, expenses []transaction.Transaction) Recommendation {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	averageMonthly := total.Div(decimal.NewFromInt(int64(s.policy.WindowMonths)))

	trend := s.trendOf(expenses)
	buffered := averageMonthly.Mul(s.bufferFor(trend))
	recommended := buffered.Round(0)
	// A tiny positive average must still yield a positive recommendation;
	// rounding would otherwise drop a sub-half-unit amount to zero.
	if recommended.IsZero() && averageMonthly.IsPositive() {
		recommended = buffered.Ceil()
	}

	reason := fmt.Sprintf("Based on %d transactions over the last %d months",
		len(expenses), s.policy.WindowMonths)
	if trend != TrendStable {
		reason += fmt.Sprintf("; spending is %s", trend)
	}

	return Recommendation{
		CategoryID:        categoryId,
		Category:          name,
		RecommendedAmount: recommended,
		Reason:            reason,
		Confidence:        s.confidence(expenses, total),
		HistoricalAverage: averageMonthly,
		Trend:             trend,
	}
}

// trendOf compares the mean of the most recent transactions against the
// mean of the earliest ones. With few transactions the slices overlap,
// which pushes the result towards stable.
func (s *ServiceImpl) trendOf(expenses []transaction.Transaction) Trend {
	sample := s.policy.TrendSampleSize
	recent := expenses
	if len(recent) > sample {
		recent = recent[len(recent)-sample:]
	}
	older := expenses
	if len(older) > sample {
		older = older[:sample]
	}

	recentMean := meanOf(recent)
	olderMean := meanOf(older)
	switch {
	case recentMean.GreaterThan(olderMean.Mul(decimal.NewFromFloat(s.policy.IncreasingBand))):
		return TrendIncreasing
	case recentMean.LessThan(olderMean.Mul(decimal.NewFromFloat(s.policy.DecreasingBand))):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func (s *ServiceImpl) bufferFor(trend Trend) decimal.Decimal {
	switch trend {
	case TrendIncreasing:
		return decimal.NewFromFloat(s.policy.IncreasingBuffer)
	case TrendDecreasing:
		return decimal.NewFromFloat(s.policy.DecreasingBuffer)
	default:
		return decimal.NewFromFloat(s.policy.StableBuffer)
	}
}

// confidence scores how consistent the per-transaction amounts are: the
// coefficient of variation around the mean, inverted onto a bounded
// percentage scale.
func (s *ServiceImpl) confidence(expenses []transaction.Transaction, total decimal.Decimal) float64 {
	mean, _ := total.Div(decimal.NewFromInt(int64(len(expenses)))).Float64()
	if mean <= 0 {
		return s.policy.MinConfidence
	}

	variance := 0.0
	for _, expense := range expenses {
		amount, _ := expense.Amount.Float64()
		variance += (amount - mean) * (amount - mean)
	}
	variance /= float64(len(expenses))
	coefficientOfVariation := math.Sqrt(variance) / mean

	confidence := 100 - coefficientOfVariation*100
	if confidence < s.policy.MinConfidence {
		return s.policy.MinConfidence
	}
	if confidence > s.policy.MaxConfidence {
		return s.policy.MaxConfidence
	}
	return confidence
}

func meanOf(expenses []transaction.Transaction) decimal.Decimal {
	if len(expenses) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, expense := range expenses {
		sum = sum.Add(expense.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(expenses))))
}
