package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tree-identifier/config"
	"tree-identifier/gemini"
	"tree-identifier/handlers"
	"tree-identifier/identify"
	"tree-identifier/llm"
	"tree-identifier/metrics"
	"tree-identifier/middleware"
	"tree-identifier/stubllm"
	"tree-identifier/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx := context.Background()

	// Select the model provider
	var client llm.Client
	switch cfg.LLMProvider {
	case "stub":
		client = stubllm.NewClient()
	default:
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required")
		}
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer geminiClient.Close()
		client = geminiClient
	}

	log.Infof("Using %s provider with model %s", client.SourceName(), cfg.GeminiModel)

	metrics.Register()

	// Initialize service and handlers
	service := identify.NewService(client)
	h := handlers.NewHandlers(service, cfg.GeminiModel, cfg.MaxUploadBytes)

	// Setup HTTP server
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Single-page UI
	router.GET("/", web.Index)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/status", h.Status)
		api.POST("/identify", h.Identify)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Infof("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Create a deadline for server shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
