package app

import (
	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget/alerts", deps.AlertHandler.GetAlerts).Methods("GET")
	r.HandleFunc("/api/budget/stats", deps.StatsHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/budget/recommendations", deps.RecommendationHandler.GetRecommendations).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/budget/{id}/active", deps.BudgetHandler.ToggleActive).Methods("PATCH")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Record).Methods("POST")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetRecent).Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
}
