package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/fkhayef/splitcore/internal/balance"
	"github.com/fkhayef/splitcore/internal/config"
	"github.com/fkhayef/splitcore/internal/snapshot"
	"github.com/fkhayef/splitcore/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	path := cfg.SnapshotPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open snapshot", "path", path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	snap, err := snapshot.Decode(f)
	if err != nil {
		slog.Error("failed to decode snapshot", "path", path, "error", err)
		os.Exit(1)
	}

	service := balance.NewService(snap)
	result, err := service.GroupBalances(context.Background(), snap.GroupID())
	if err != nil {
		slog.Error("failed to compute balances", "group_id", snap.GroupID(), "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.ToResponse()); err != nil {
		slog.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
}
