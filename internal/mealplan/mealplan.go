package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/isoanderschu/Calor-E/internal/config"

	"golang.org/x/sync/singleflight"
)

// Errors the planner can surface to callers. The first three correspond to
// documented Spoonacular failure codes and deserve tailored guidance.
var (
	ErrQuotaExceeded      = errors.New("api quota exceeded")
	ErrInvalidCredentials = errors.New("invalid api key")
	ErrRateLimited        = errors.New("api rate limit exceeded")
	ErrEmptyPlan          = errors.New("could not generate a meal plan with the given constraints")
)

// StatusError is returned when the Spoonacular API responds with an
// unexpected status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spoonacular api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Nutrition is a calories/protein/fat/carbs summary. Calories are kcal, the
// macros are grams.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Meal is a single recipe entry in a generated plan.
type Meal struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Image          string     `json:"image"`
	ReadyInMinutes int        `json:"readyInMinutes"`
	Servings       int        `json:"servings"`
	SourceURL      string     `json:"sourceUrl"`
	Summary        string     `json:"summary,omitempty"`
	Nutrition      *Nutrition `json:"nutrition,omitempty"`
}

// generateResponse is the top-level structure of the generate endpoint
// response for a single day.
type generateResponse struct {
	Meals []Meal `json:"meals"`
}

// MealGroup is one aggregated slot of the day with its member recipes.
type MealGroup struct {
	Title          string    `json:"title"`
	Image          string    `json:"image"`
	Description    string    `json:"description,omitempty"`
	ReadyInMinutes int       `json:"readyInMinutes"`
	Servings       int       `json:"servings"`
	SourceURLs     []string  `json:"sourceUrl"`
	Nutrition      Nutrition `json:"nutrition"`
	Meals          []Meal    `json:"meals"`
}

// Plan is a generated day of meals grouped into slots, with daily totals.
type Plan struct {
	Meals     []MealGroup `json:"meals"`
	Nutrients Nutrition   `json:"nutrients"`
}

// PlanRequest describes the constraints for a meal plan.
type PlanRequest struct {
	TargetCalories int
	Diet           []string
	Exclude        []string
	TimeFrame      string
}

// Client is an interface for the Spoonacular meal planner API.
type Client interface {
	Generate(ctx context.Context, req PlanRequest) (*Plan, error)
}

// spoonacularClient is the concrete implementation of the meal planner client.
type spoonacularClient struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	plans        singleflight.Group
}

// NewClient creates a new Spoonacular meal planner client. It fails when no
// API key is configured so that a misconfiguration surfaces before the first
// plan request.
func NewClient(cfg *config.Config) (Client, error) {
	if cfg.SpoonacularAPIKey == "" {
		return nil, errors.New("spoonacular api key not set")
	}
	return &spoonacularClient{
		apiKey:       cfg.SpoonacularAPIKey,
		baseURL:      cfg.SpoonacularBaseURL,
		imageBaseURL: cfg.SpoonacularImageBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}, nil
}

// Generate requests a day of meals matching the constraints and aggregates
// them into breakfast, lunch and dinner slots. Identical concurrent requests
// share a single upstream call.
func (c *spoonacularClient) Generate(ctx context.Context, req PlanRequest) (*Plan, error) {
	v, err, _ := c.plans.Do(planKey(req), func() (interface{}, error) {
		return c.generate(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}

// planKey collapses identical concurrent requests onto one upstream call.
func planKey(req PlanRequest) string {
	return fmt.Sprintf("%d|%s|%s|%s", req.TargetCalories, strings.Join(req.Diet, ","), strings.Join(req.Exclude, ","), req.TimeFrame)
}

func (c *spoonacularClient) generate(ctx context.Context, req PlanRequest) (*Plan, error) {
	timeFrame := req.TimeFrame
	if timeFrame == "" {
		timeFrame = "day"
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("timeFrame", timeFrame)
	params.Set("targetCalories", strconv.Itoa(req.TargetCalories))
	params.Set("number", "3")
	params.Set("addRecipeInformation", "true")
	if len(req.Diet) > 0 {
		params.Set("diet", strings.Join(req.Diet, ","))
	}
	if len(req.Exclude) > 0 {
		params.Set("exclude", strings.Join(req.Exclude, ","))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/mealplanner/generate?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meal plan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp)
	}

	var data generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(data.Meals) == 0 {
		return nil, ErrEmptyPlan
	}

	return c.aggregate(ctx, data.Meals), nil
}

// classifyStatus maps the documented Spoonacular failure codes onto their
// dedicated errors. Anything else keeps its status code and body.
func classifyStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusPaymentRequired:
		return ErrQuotaExceeded
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return newStatusError(resp)
}

func newStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
