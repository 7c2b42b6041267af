package main

import (
	"fmt"
	"net/http"
	"os"

	"rizzk-go/internal/config"
	"rizzk-go/internal/database"
	"rizzk-go/internal/history"
	"rizzk-go/internal/logger"
	"rizzk-go/internal/marketdata"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	store := history.NewStore(db)
	quotes := marketdata.NewClient(&cfg.MarketData, log)

	// Setup HTTP server
	mux := http.NewServeMux()

	// Create a handler that has access to the logger, store and quote client
	apiHandler := NewAPIHandler(log, store, quotes)

	// API endpoints
	mux.HandleFunc("/api/calculate", apiHandler.CalculateHandler)
	mux.HandleFunc("/api/history", apiHandler.HistoryHandler)
	mux.HandleFunc("/api/history/export", apiHandler.ExportHandler)
	mux.HandleFunc("/api/quote", apiHandler.QuoteHandler)
	mux.HandleFunc("/api/watchlist", apiHandler.WatchlistHandler)
	mux.HandleFunc("/api/status", apiHandler.StatusHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting API server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("API server failed", zap.Error(err))
	}
}
