package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finquest/finquest/internal/achievement"
	"github.com/finquest/finquest/internal/auth"
	"github.com/finquest/finquest/internal/bootstrap"
	"github.com/finquest/finquest/internal/character"
	"github.com/finquest/finquest/internal/config"
	"github.com/finquest/finquest/internal/database"
	"github.com/finquest/finquest/internal/handler"
	"github.com/finquest/finquest/internal/leaderboard"
	"github.com/finquest/finquest/internal/minigame"
	"github.com/finquest/finquest/internal/quest"
	"github.com/finquest/finquest/internal/server"
	"github.com/finquest/finquest/internal/social"
)

const (
	// ShutdownTimeout bounds how long graceful shutdown may take
	ShutdownTimeout = 10 * time.Second

	// Pool connection lifetimes
	ConnMaxIdleTime = 5 * time.Minute
	ConnMaxLifetime = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), config.DefaultMaxConnections, ConnMaxIdleTime, ConnMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, publisher, deadLetter, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	achievementService := achievement.NewService(repos.Achievement)
	authService := auth.NewService(repos.User, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost)
	characterService := character.NewService(repos.Character, repos.Quest, repos.MiniGame, repos.Activity, achievementService, publisher)
	questService := quest.NewService(repos.Quest, repos.Character, repos.Activity, achievementService, publisher)
	miniGameService := minigame.NewService(repos.MiniGame, repos.Character, achievementService, publisher)
	leaderboardService := leaderboard.NewService(repos.Character)
	socialService := social.NewService(repos.Social, repos.User, repos.Character)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, dbPool, server.Services{
		Auth:        authService,
		Character:   characterService,
		Quest:       questService,
		MiniGame:    miniGameService,
		Achievement: achievementService,
		Leaderboard: leaderboardService,
		Social:      socialService,
	})

	// Run the server until interrupted
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		DeadLetter: deadLetter,
	})
}
