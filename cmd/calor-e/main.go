package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/isoanderschu/Calor-E/internal/config"
	"github.com/isoanderschu/Calor-E/internal/mealplan"
	"github.com/isoanderschu/Calor-E/internal/nutrition"
	"github.com/isoanderschu/Calor-E/internal/server"
)

func main() {
	// 1. Load Configuration
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Failed to load .env file: %v", err)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize API Clients
	nutritionClient, err := nutrition.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create USDA client: %v", err)
	}

	mealPlanClient, err := mealplan.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create Spoonacular client: %v", err)
	}

	// 3. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server.New(nutritionClient, mealPlanClient).Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Calor-E Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
