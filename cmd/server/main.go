package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"runboard/internal/api"
	"runboard/internal/app/fanout"
	"runboard/internal/app/service"
	"runboard/internal/app/worker"
	"runboard/internal/common/security"
	"runboard/internal/domain/repository"
	"runboard/internal/platform/broker"
	"runboard/internal/platform/config"
	"runboard/internal/platform/database"
	"runboard/internal/platform/discord"
	"runboard/internal/platform/logging"
	"runboard/internal/platform/storage"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info("Configuration loaded.")

	// 2. Initialize JWT
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.AccessTTL, cfg.RefreshTTL)

	// 3. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("Database initialisation failed")
	}
	defer database.Close(db)

	// 4. Initialize Redis (optional)
	rdb, err := broker.ConnectRedis(cfg)
	if err != nil {
		log.WithError(err).Fatal("Redis initialisation failed")
	}
	defer broker.CloseRedis(rdb)

	// 5. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	runRepo := repository.NewRunRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)

	// 6. Live channel fanout
	hub := fanout.NewHub()
	var notifier service.Notifier = fanout.NewLocalNotifier(hub)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if rdb != nil {
		notifier = fanout.NewRedisNotifier(rdb, cfg.FanoutChannel)
		go worker.NewFanoutRelay(rdb, cfg.FanoutChannel, hub).Start(workerCtx)
	}

	// 7. Optional collaborators
	var announcer service.RunAnnouncer
	if a, err := discord.NewAnnouncer(cfg); err != nil {
		log.WithError(err).Warn("Discord announcements disabled")
	} else if a != nil {
		announcer = a
	}
	var avatarStore service.ObjectStorage
	if s, err := storage.NewObjectStore(cfg); err != nil {
		log.WithError(err).Warn("Avatar uploads disabled")
	} else if s != nil {
		avatarStore = s
	}

	// 8. Initialize Services
	router := api.NewRouter(api.Deps{
		Tokens:             tokens,
		UserRepo:           userRepo,
		Hub:                hub,
		AuthService:        service.NewAuthService(userRepo, tokens),
		UserService:        service.NewUserService(userRepo),
		ProfileService:     service.NewProfileService(userRepo, runRepo, discussionRepo, avatarStore, cfg.AvatarMaxBytes),
		LeaderboardService: service.NewLeaderboardService(userRepo),
		RunService:         service.NewRunService(runRepo, challengeRepo, notifier, announcer),
		DiscussionService:  service.NewDiscussionService(discussionRepo, notifier),
		ChallengeService:   service.NewChallengeService(challengeRepo),
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		AvatarMaxBytes:     cfg.AvatarMaxBytes,
	})

	// 9. HTTP Server. No WriteTimeout: it would cut long-lived sockets.
	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.APIPort).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatalf("Could not listen on %s", cfg.APIPort)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}

	log.Info("Server and worker stopped gracefully.")
}
