package config

import (
	"os"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Success", func(t *testing.T) {
		setEnv("USDA_API_KEY", "usda_key")
		setEnv("SPOONACULAR_API_KEY", "spoon_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.USDAAPIKey != "usda_key" {
			t.Errorf("Expected USDAAPIKey to be 'usda_key', got '%s'", cfg.USDAAPIKey)
		}
		if cfg.SpoonacularAPIKey != "spoon_key" {
			t.Errorf("Expected SpoonacularAPIKey to be 'spoon_key', got '%s'", cfg.SpoonacularAPIKey)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		setEnv("USDA_API_KEY", "usda_key")
		setEnv("SPOONACULAR_API_KEY", "spoon_key")
		os.Unsetenv("USDA_BASE_URL")
		os.Unsetenv("SPOONACULAR_BASE_URL")
		os.Unsetenv("SPOONACULAR_IMAGE_BASE_URL")
		os.Unsetenv("HTTP_TIMEOUT_SECONDS")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.USDABaseURL != "https://api.nal.usda.gov/fdc/v1" {
			t.Errorf("Unexpected USDABaseURL '%s'", cfg.USDABaseURL)
		}
		if cfg.SpoonacularBaseURL != "https://api.spoonacular.com" {
			t.Errorf("Unexpected SpoonacularBaseURL '%s'", cfg.SpoonacularBaseURL)
		}
		if cfg.SpoonacularImageBaseURL != "https://spoonacular.com/recipeImages/" {
			t.Errorf("Unexpected SpoonacularImageBaseURL '%s'", cfg.SpoonacularImageBaseURL)
		}
		if cfg.HTTPTimeout != 10*time.Second {
			t.Errorf("Expected default timeout of 10s, got %v", cfg.HTTPTimeout)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("USDA_API_KEY", "usda_key")
		setEnv("SPOONACULAR_API_KEY", "spoon_key")
		setEnv("USDA_BASE_URL", "http://usda.test")
		setEnv("SPOONACULAR_BASE_URL", "http://spoon.test")
		setEnv("SPOONACULAR_IMAGE_BASE_URL", "http://images.test/")
		setEnv("HTTP_TIMEOUT_SECONDS", "30")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.USDABaseURL != "http://usda.test" {
			t.Errorf("Unexpected USDABaseURL '%s'", cfg.USDABaseURL)
		}
		if cfg.SpoonacularBaseURL != "http://spoon.test" {
			t.Errorf("Unexpected SpoonacularBaseURL '%s'", cfg.SpoonacularBaseURL)
		}
		if cfg.SpoonacularImageBaseURL != "http://images.test/" {
			t.Errorf("Unexpected SpoonacularImageBaseURL '%s'", cfg.SpoonacularImageBaseURL)
		}
		if cfg.HTTPTimeout != 30*time.Second {
			t.Errorf("Expected timeout of 30s, got %v", cfg.HTTPTimeout)
		}
	})

	t.Run("MissingUSDAAPIKey", func(t *testing.T) {
		setEnv("SPOONACULAR_API_KEY", "spoon_key")
		os.Unsetenv("USDA_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing USDA_API_KEY, got nil")
		}
		expectedError := "USDA_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingSpoonacularAPIKey", func(t *testing.T) {
		setEnv("USDA_API_KEY", "usda_key")
		os.Unsetenv("SPOONACULAR_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing SPOONACULAR_API_KEY, got nil")
		}
		expectedError := "SPOONACULAR_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		setEnv("USDA_API_KEY", "usda_key")
		setEnv("SPOONACULAR_API_KEY", "spoon_key")
		setEnv("HTTP_TIMEOUT_SECONDS", "soon")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for non-numeric HTTP_TIMEOUT_SECONDS, got nil")
		}

		setEnv("HTTP_TIMEOUT_SECONDS", "0")
		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for zero HTTP_TIMEOUT_SECONDS, got nil")
		}
	})
}
