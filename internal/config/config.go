package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the optional settings.
const (
	defaultUSDABaseURL        = "https://api.nal.usda.gov/fdc/v1"
	defaultSpoonacularBaseURL = "https://api.spoonacular.com"
	defaultImageBaseURL       = "https://spoonacular.com/recipeImages/"
	defaultHTTPTimeoutSeconds = 10
)

// Config holds the configuration for the application.
type Config struct {
	USDAAPIKey        string
	SpoonacularAPIKey string

	// Upstream endpoints, overridable so tests can point the clients at a
	// local server.
	USDABaseURL             string
	SpoonacularBaseURL      string
	SpoonacularImageBaseURL string

	HTTPTimeout time.Duration
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	usdaAPIKey := os.Getenv("USDA_API_KEY")
	if usdaAPIKey == "" {
		return nil, fmt.Errorf("USDA_API_KEY environment variable not set")
	}

	spoonacularAPIKey := os.Getenv("SPOONACULAR_API_KEY")
	if spoonacularAPIKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_API_KEY environment variable not set")
	}

	usdaBaseURL := os.Getenv("USDA_BASE_URL")
	if usdaBaseURL == "" {
		usdaBaseURL = defaultUSDABaseURL
	}

	spoonacularBaseURL := os.Getenv("SPOONACULAR_BASE_URL")
	if spoonacularBaseURL == "" {
		spoonacularBaseURL = defaultSpoonacularBaseURL
	}

	imageBaseURL := os.Getenv("SPOONACULAR_IMAGE_BASE_URL")
	if imageBaseURL == "" {
		imageBaseURL = defaultImageBaseURL
	}

	timeoutSeconds := defaultHTTPTimeoutSeconds
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", v)
		}
		timeoutSeconds = seconds
	}

	return &Config{
		USDAAPIKey:              usdaAPIKey,
		SpoonacularAPIKey:       spoonacularAPIKey,
		USDABaseURL:             usdaBaseURL,
		SpoonacularBaseURL:      spoonacularBaseURL,
		SpoonacularImageBaseURL: imageBaseURL,
		HTTPTimeout:             time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
