package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/isoanderschu/Calor-E/internal/calorie"
	"github.com/isoanderschu/Calor-E/internal/mealplan"
	"github.com/isoanderschu/Calor-E/internal/nutrition"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes the nutrition assistant over HTTP. It composes the calorie
// estimator, the food lookup client and the meal planner; all presentation
// stays with the frontend consuming this API.
type Server struct {
	nutritionClient nutrition.Client
	mealPlanClient  mealplan.Client
}

// New creates a new API server around the given clients.
func New(nutritionClient nutrition.Client, mealPlanClient mealplan.Client) *Server {
	return &Server{
		nutritionClient: nutritionClient,
		mealPlanClient:  mealPlanClient,
	}
}

// Routes initializes all server routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calories/estimate", s.handleEstimateCalories)
		r.Get("/calories/activity-levels", s.handleActivityLevels)

		r.Get("/foods/search", s.handleSearchFoods)
		r.Get("/foods/units", s.handleUnits)
		r.Get("/foods/{fdcID}/nutrients", s.handleFoodNutrients)

		r.Post("/mealplan/generate", s.handleGenerateMealPlan)
		r.Get("/mealplan/diets", s.handleDiets)
		r.Get("/mealplan/allergies", s.handleAllergies)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the body of every failed request. The code is stable so
// the frontend can pick the matching guidance text.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondDomainError maps a failure from one of the components onto an HTTP
// status and a stable error code.
func respondDomainError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, calorie.ErrInvalidInput):
		status, code = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, nutrition.ErrUnsupportedUnit):
		status, code = http.StatusBadRequest, "unsupported_unit"
	case errors.Is(err, mealplan.ErrEmptyPlan):
		status, code = http.StatusUnprocessableEntity, "empty_plan"
	case errors.Is(err, mealplan.ErrQuotaExceeded):
		status, code = http.StatusPaymentRequired, "quota_exceeded"
	case errors.Is(err, mealplan.ErrRateLimited):
		status, code = http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, mealplan.ErrInvalidCredentials):
		status, code = http.StatusBadGateway, "upstream_auth"
	default:
		// Transport failures, decode failures and unexpected upstream
		// statuses all count as a broken upstream.
		status, code = http.StatusBadGateway, "upstream_error"
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Upstream failure: %v", err)
	}
	respondError(w, status, code, err.Error())
}
