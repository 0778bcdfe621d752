package main

import (
	"log/slog"
	"os"

	"trustvault/internal/api"
	"trustvault/internal/auth"
	"trustvault/internal/config"
	"trustvault/internal/service"
	"trustvault/internal/storage/sqlite"
	"trustvault/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DatabasePath)

	startingBalance, err := cfg.StartingBalanceDecimal()
	if err != nil {
		slog.Error("Invalid starting balance", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, startingBalance)

	server := api.New(
		cfg.Addr(),
		cfg.CORSOrigins,
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewGroupService(store),
		service.NewProposalService(store),
		service.NewInviteService(store),
		jwtManager,
	)

	slog.Info("TrustVault server starting", "address", cfg.Addr())
	if err := server.Run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
