package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/isoanderschu/Calor-E/internal/config"

	"golang.org/x/sync/singleflight"
)

const defaultPageSize = 10

// searchDataTypes restricts searches to the generic food datasets, keeping
// branded products out of the results.
var searchDataTypes = []string{"Foundation", "SR Legacy", "Survey (FNDDS)"}

// Food is a single result from a food search.
type Food struct {
	FDCID        int    `json:"fdcId"`
	Description  string `json:"description"`
	DataType     string `json:"dataType"`
	FoodCategory string `json:"foodCategory"`
}

// searchResponse is the top-level structure of the search endpoint response.
type searchResponse struct {
	TotalHits int    `json:"totalHits"`
	Foods     []Food `json:"foods"`
}

// Nutrient identifies the nutrient measured by a FoodNutrient entry.
type Nutrient struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UnitName string `json:"unitName"`
}

// FoodNutrient is one nutrient measurement on a food record. Amounts are
// reported per 100 g of the food.
type FoodNutrient struct {
	Nutrient Nutrient `json:"nutrient"`
	Amount   float64  `json:"amount"`
}

// FoodDetail is the detailed food record returned by the food endpoint.
type FoodDetail struct {
	FDCID         int            `json:"fdcId"`
	Description   string         `json:"description"`
	DataType      string         `json:"dataType"`
	FoodNutrients []FoodNutrient `json:"foodNutrients"`
}

// StatusError is returned when the FoodData Central API responds with an
// unexpected status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("usda api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Client is an interface for the USDA FoodData Central API.
type Client interface {
	Search(ctx context.Context, query string, pageSize int) ([]Food, error)
	FoodDetails(ctx context.Context, fdcID int) (*FoodDetail, error)
}

// usdaClient is the concrete implementation of the FoodData Central client.
type usdaClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	details    singleflight.Group
}

// NewClient creates a new FoodData Central client. It fails when no API key
// is configured so that a misconfiguration surfaces before the first lookup.
func NewClient(cfg *config.Config) (Client, error) {
	if cfg.USDAAPIKey == "" {
		return nil, errors.New("usda api key not set")
	}
	return &usdaClient{
		apiKey:  cfg.USDAAPIKey,
		baseURL: cfg.USDABaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}, nil
}

// Search searches the food database for the given query. A non-positive
// pageSize falls back to the default of 10 results.
func (c *usdaClient) Search(ctx context.Context, query string, pageSize int) ([]Food, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(pageSize))
	for _, dataType := range searchDataTypes {
		params.Add("dataType", dataType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/foods/search?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Foods, nil
}

// FoodDetails fetches the full food record for an FDC ID. Identical
// concurrent lookups share a single upstream request.
func (c *usdaClient) FoodDetails(ctx context.Context, fdcID int) (*FoodDetail, error) {
	v, err, _ := c.details.Do(strconv.Itoa(fdcID), func() (interface{}, error) {
		return c.fetchFoodDetails(ctx, fdcID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*FoodDetail), nil
}

func (c *usdaClient) fetchFoodDetails(ctx context.Context, fdcID int) (*FoodDetail, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/food/%d?%s", c.baseURL, fdcID, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch food details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp)
	}

	var detail FoodDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &detail, nil
}

func newStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
