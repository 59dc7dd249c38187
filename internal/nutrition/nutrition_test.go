package nutrition

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/isoanderschu/Calor-E/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		USDAAPIKey:  "test_key",
		USDABaseURL: baseURL,
		HTTPTimeout: 5 * time.Second,
	}
}

func TestNewClient(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		if _, err := NewClient(&config.Config{}); err == nil {
			t.Fatal("Expected an error for missing API key, got nil")
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/foods/search" {
				t.Errorf("Expected path '/foods/search', got '%s'", r.URL.Path)
			}
			if r.URL.Query().Get("api_key") != "test_key" {
				t.Errorf("Expected api_key 'test_key', got '%s'", r.URL.Query().Get("api_key"))
			}
			if r.URL.Query().Get("query") != "banana" {
				t.Errorf("Expected query 'banana', got '%s'", r.URL.Query().Get("query"))
			}
			if r.URL.Query().Get("pageSize") != "10" {
				t.Errorf("Expected default pageSize '10', got '%s'", r.URL.Query().Get("pageSize"))
			}
			dataTypes := r.URL.Query()["dataType"]
			if len(dataTypes) != 3 || dataTypes[0] != "Foundation" || dataTypes[1] != "SR Legacy" || dataTypes[2] != "Survey (FNDDS)" {
				t.Errorf("Unexpected dataType filter %v", dataTypes)
			}

			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"totalHits": 2,
				"foods": [
					{"fdcId": 1102653, "description": "Bananas, ripe and slightly ripe, raw", "dataType": "Foundation", "foodCategory": "Fruits and Fruit Juices"},
					{"fdcId": 173944, "description": "Bananas, raw", "dataType": "SR Legacy", "foodCategory": "Fruits and Fruit Juices"}
				]
			}`)
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		foods, err := client.Search(context.Background(), "banana", 0)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(foods) != 2 {
			t.Fatalf("Expected 2 foods, got %d", len(foods))
		}
		if foods[0].FDCID != 1102653 {
			t.Errorf("Expected fdcId 1102653, got %d", foods[0].FDCID)
		}
		if foods[0].FoodCategory != "Fruits and Fruit Juices" {
			t.Errorf("Unexpected food category '%s'", foods[0].FoodCategory)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "upstream broke")
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		_, err = client.Search(context.Background(), "banana", 5)
		if err == nil {
			t.Fatal("Expected an error for non-200 status code, got nil")
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Expected a StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", statusErr.StatusCode)
		}
		if statusErr.Body != "upstream broke" {
			t.Errorf("Expected body to be preserved, got '%s'", statusErr.Body)
		}
	})
}

func TestFoodDetails(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/food/1102653" {
				t.Errorf("Expected path '/food/1102653', got '%s'", r.URL.Path)
			}
			if r.URL.Query().Get("api_key") != "test_key" {
				t.Errorf("Expected api_key 'test_key', got '%s'", r.URL.Query().Get("api_key"))
			}

			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"fdcId": 1102653,
				"description": "Bananas, ripe and slightly ripe, raw",
				"dataType": "Foundation",
				"foodNutrients": [
					{"nutrient": {"id": 1008, "name": "Energy", "unitName": "kcal"}, "amount": 89},
					{"nutrient": {"id": 1003, "name": "Protein", "unitName": "g"}, "amount": 1.09}
				]
			}`)
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		detail, err := client.FoodDetails(context.Background(), 1102653)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if detail.FDCID != 1102653 {
			t.Errorf("Expected fdcId 1102653, got %d", detail.FDCID)
		}
		if len(detail.FoodNutrients) != 2 {
			t.Fatalf("Expected 2 nutrients, got %d", len(detail.FoodNutrients))
		}
		if detail.FoodNutrients[0].Nutrient.ID != 1008 || detail.FoodNutrients[0].Amount != 89 {
			t.Errorf("Unexpected first nutrient %+v", detail.FoodNutrients[0])
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		_, err = client.FoodDetails(context.Background(), 42)
		if err == nil {
			t.Fatal("Expected an error for non-200 status code, got nil")
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Expected a StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", statusErr.StatusCode)
		}
	})

	t.Run("DeduplicatesConcurrentLookups", func(t *testing.T) {
		var requests atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			time.Sleep(100 * time.Millisecond)
			fmt.Fprintln(w, `{"fdcId": 1102653, "description": "Bananas", "foodNutrients": []}`)
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := client.FoodDetails(context.Background(), 1102653); err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
			}()
		}
		wg.Wait()

		if got := requests.Load(); got != 1 {
			t.Errorf("Expected concurrent lookups to share 1 request, got %d", got)
		}
	})
}
