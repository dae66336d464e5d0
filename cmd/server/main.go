package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"teamledger/internal/config"
	"teamledger/internal/ledger"
	"teamledger/internal/server"
	"teamledger/internal/service"
	"teamledger/internal/storage/sqlite"
	"teamledger/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	adapter := ledger.New(store)
	srv := server.New(
		service.NewBalanceService(store, adapter, cfg.SuggestionLimit),
		service.NewLedgerService(store),
		service.NewStatusService(store, adapter),
	)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "suggestion_limit", cfg.SuggestionLimit)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
