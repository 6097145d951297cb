package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lemDace/Smackhouse-Saltbot/internal/app"
	"github.com/lemDace/Smackhouse-Saltbot/internal/config"
	"github.com/lemDace/Smackhouse-Saltbot/internal/database"
	"github.com/lemDace/Smackhouse-Saltbot/internal/discord"
	"github.com/lemDace/Smackhouse-Saltbot/internal/logging"
	"github.com/lemDace/Smackhouse-Saltbot/internal/scoring"
	"github.com/lemDace/Smackhouse-Saltbot/internal/sentiment"
	"github.com/lemDace/Smackhouse-Saltbot/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ledger := database.NewLedgerRepo(db)
	settings := database.NewSettingsRepo(db)
	policy := scoring.NewPolicy(sentiment.NewScorer())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	svc, err := app.NewService(ctx, ledger, settings, policy, clockwork.NewRealClock())
	cancel()
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg.DiscordToken, cfg.CommandPrefix, svc)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}
	if err := bot.Start(); err != nil {
		slog.Error("Failed to connect to Discord", "error", err)
		os.Exit(1)
	}
	slog.Info("SaltBot is online")

	srv := server.NewServer(cfg.Port, db)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(srv, bot)
}

func waitForShutdown(srv *server.Server, bot *discord.Bot) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("Shutdown signal received, cleaning up...")

	if err := bot.Stop(); err != nil {
		slog.Error("Discord shutdown error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
