package app

import (
	"database/sql"

	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/alert"
	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/pennywise/pennywise/pkg/category"
	"github.com/pennywise/pennywise/pkg/recommendation"
	"github.com/pennywise/pennywise/pkg/stats"
	"github.com/pennywise/pennywise/pkg/transaction"
	"github.com/pennywise/pennywise/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repo
	CategoryService category.Service
	CategoryHandler *category.Handler

	TransactionRepo    transaction.Repo
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	AlertService *alert.ServiceImpl
	AlertHandler *alert.Handler

	StatsService *stats.StatsServiceImpl
	StatsHandler *stats.StatsHandler

	RecommendationService *recommendation.ServiceImpl
	RecommendationHandler *recommendation.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo, deps.TransactionRepo, deps.CategoryService, cfg.Budget)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.AlertService = alert.NewAlertService(deps.BudgetService, deps.Clock, cfg.Budget)
	deps.AlertHandler = alert.NewHandler(deps.AlertService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.BudgetService)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService)

	deps.RecommendationService = recommendation.NewRecommendationService(
		deps.TransactionRepo, deps.CategoryService, deps.Clock, cfg.Recommendation)
	deps.RecommendationHandler = recommendation.NewHandler(deps.RecommendationService)

	return deps
}
