package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/isoanderschu/Calor-E/internal/calorie"
	"github.com/isoanderschu/Calor-E/internal/mealplan"
	"github.com/isoanderschu/Calor-E/internal/nutrition"

	"github.com/go-chi/chi/v5"
)

type estimateRequest struct {
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	AgeYears      int     `json:"age_years"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
}

type estimateResponse struct {
	DailyCalories float64 `json:"daily_calories"`
}

// handleEstimateCalories estimates daily calorie needs from the submitted
// personal metrics. A fractional age fails the decode and is rejected.
func (s *Server) handleEstimateCalories(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	daily, err := calorie.Estimate(req.WeightKg, req.HeightCm, req.AgeYears, req.Gender, req.ActivityLevel)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, estimateResponse{DailyCalories: daily})
}

func (s *Server) handleActivityLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"activity_levels": calorie.ActivityLevels()})
}

// foodResult decorates a search hit with the liquid heuristic so the
// frontend can preselect volume units.
type foodResult struct {
	nutrition.Food
	IsLiquid bool `json:"is_liquid"`
}

func (s *Server) handleSearchFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "invalid_input", "query parameter is required")
		return
	}

	pageSize := 0
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_input", "page_size must be a positive integer")
			return
		}
		pageSize = n
	}

	foods, err := s.nutritionClient.Search(r.Context(), query, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	results := make([]foodResult, 0, len(foods))
	for _, food := range foods {
		results = append(results, foodResult{
			Food:     food,
			IsLiquid: nutrition.IsLikelyLiquid(food.FoodCategory, food.Description),
		})
	}

	respondJSON(w, http.StatusOK, map[string][]foodResult{"foods": results})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"units": nutrition.Units()})
}

type foodSummary struct {
	FDCID       int    `json:"fdcId"`
	Description string `json:"description"`
	DataType    string `json:"dataType"`
}

type nutrientsResponse struct {
	Food       foodSummary              `json:"food"`
	Grams      float64                  `json:"grams"`
	Main       []nutrition.NutrientRow  `json:"main"`
	Additional []nutrition.NutrientRow  `json:"additional"`
	Macros     nutrition.MacroBreakdown `json:"macros"`
}

// handleFoodNutrients fetches a food record and shapes its nutrition facts
// for a portion given as an amount and a unit. The unit defaults to grams.
func (s *Server) handleFoodNutrients(w http.ResponseWriter, r *http.Request) {
	fdcID, err := strconv.Atoi(chi.URLParam(r, "fdcID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "fdcID must be an integer")
		return
	}

	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		respondError(w, http.StatusBadRequest, "invalid_input", "amount parameter is required")
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_input", "amount must be a positive number")
		return
	}

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "g"
	}

	grams, err := nutrition.ConvertToGrams(amount, unit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	detail, err := s.nutritionClient.FoodDetails(r.Context(), fdcID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	tables, err := nutrition.BuildNutrientTables(detail, grams)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nutrientsResponse{
		Food: foodSummary{
			FDCID:       detail.FDCID,
			Description: detail.Description,
			DataType:    detail.DataType,
		},
		Grams:      grams,
		Main:       tables.Main,
		Additional: tables.Additional,
		Macros:     tables.Macros,
	})
}

type mealPlanRequest struct {
	TargetCalories int      `json:"target_calories"`
	Diet           []string `json:"diet,omitempty"`
	Exclude        []string `json:"exclude,omitempty"`
	TimeFrame      string   `json:"time_frame,omitempty"`
}

type mealPlanResponse struct {
	*mealplan.Plan
	MacroSplit mealplan.Split `json:"macro_split"`
}

func (s *Server) handleGenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}
	if req.TargetCalories <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_input", "target_calories must be a positive integer")
		return
	}

	plan, err := s.mealPlanClient.Generate(r.Context(), mealplan.PlanRequest{
		TargetCalories: req.TargetCalories,
		Diet:           req.Diet,
		Exclude:        req.Exclude,
		TimeFrame:      req.TimeFrame,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mealPlanResponse{
		Plan:       plan,
		MacroSplit: mealplan.MacroSplit(plan.Nutrients),
	})
}

func (s *Server) handleDiets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"diets": mealplan.AvailableDiets()})
}

func (s *Server) handleAllergies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"allergies": mealplan.CommonAllergies()})
}
