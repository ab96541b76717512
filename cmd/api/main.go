package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dhleesep9/mentor-engine/internal/config"
	"github.com/dhleesep9/mentor-engine/internal/game"
	"github.com/dhleesep9/mentor-engine/internal/handlers"
	"github.com/dhleesep9/mentor-engine/internal/logger"
	"github.com/dhleesep9/mentor-engine/internal/middleware"
	"github.com/dhleesep9/mentor-engine/internal/services"
	"github.com/dhleesep9/mentor-engine/internal/storage"
	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Mentor Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"data_dir", cfg.DataDir)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "ollama":
		llmService = services.NewOllamaService(cfg.OllamaURL, cfg.ModelName, log)
		log.Info("Using Ollama LLM provider", "url", cfg.OllamaURL)
	case "mock":
		llmService = services.NewMockLLM()
		log.Warn("Using mock LLM provider, replies are canned")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"ollama", "mock"})
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	// Initialize the model on startup
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	registry := statemachine.NewRegistry(log)
	machine, err := statemachine.LoadMachine(cfg.DataDir, registry, log)
	if err != nil {
		log.Error("Failed to load game states", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}
	log.Info("Game states loaded", "states", machine.StateIDs())

	debug := game.LoadDebugConfig(cfg.DataDir+"/debug_commands.json", log)
	processor := game.NewProcessor(store, llmService, machine, debug, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	chatHandler := handlers.NewChatHandler(processor, log)
	mux.Handle("/v1/chat", chatHandler)

	progressHandler := handlers.NewProgressHandler(store, log)
	mux.Handle("/v1/progress", progressHandler)
	mux.Handle("/v1/progress/", progressHandler)

	statesHandler := handlers.NewStatesHandler(machine, log)
	mux.Handle("/v1/states", statesHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
