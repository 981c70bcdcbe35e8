package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/mabdullah/linkedin-seo-poster/internal/completion"
	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/content"
	"github.com/mabdullah/linkedin-seo-poster/internal/linkedin"
	"github.com/mabdullah/linkedin-seo-poster/internal/notifications"
	"github.com/mabdullah/linkedin-seo-poster/internal/poster"
	"github.com/mabdullah/linkedin-seo-poster/internal/profile"
	"github.com/mabdullah/linkedin-seo-poster/internal/scheduler"
	"github.com/mabdullah/linkedin-seo-poster/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging to both file and console
	if err := setupLogging(cfg); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	logrus.Info("Starting LinkedIn SEO Poster")

	// Initialize the audit record store
	store, err := storage.NewJSONFileStore(cfg.RecordsFile)
	if err != nil {
		logrus.Fatalf("Failed to initialize record store: %v", err)
	}

	ctx := context.Background()

	// Initialize the completion service client
	completer, err := completion.NewCompleter(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize completion client: %v", err)
	}

	// Initialize the LinkedIn client; a rejected token fails startup
	linkedinClient, err := linkedin.NewClient(linkedin.ClientConfig{
		AccessToken: cfg.LinkedInAccessToken,
		Timeout:     time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		Debug:       cfg.Debug,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize LinkedIn client: %v", err)
	}

	// Initialize the content pipeline
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pipeline := content.NewPipeline(
		profile.Default(),
		profile.DefaultThemes(),
		profile.DefaultHashtagPools(),
		completer,
		rng,
	)

	// Initialize the orchestrator and scheduler
	alerter := notifications.NewService(cfg)
	posterService := poster.NewService(cfg, pipeline, linkedinClient, store, alerter)

	schedulerService, err := scheduler.NewService(cfg, posterService)
	if err != nil {
		logrus.Fatalf("Failed to initialize scheduler: %v", err)
	}

	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server for health checks and manual triggering
	router := mux.NewRouter()

	router.HandleFunc("/", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(posterService)).Methods("GET")
	router.HandleFunc("/trigger", triggerHandler(cfg, posterService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) error {
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return err
	}

	logFile, err := os.OpenFile(filepath.Join(cfg.LogDir, "poster.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	logrus.SetOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Server is running"))
}

func metricsHandler(posterService *poster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(posterService.GetMetrics()))
	}
}

func triggerHandler(cfg *config.Config, posterService *poster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go func() {
			result := posterService.CreateSEOPost(context.Background(), cfg.MaxAttempts)
			if !result.Success {
				logrus.Errorf("Manual posting trigger failed (%s): %s", result.ErrorKind, result.Error)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Posting run triggered successfully"}`))
	}
}
