// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"voting-api/anchor"
	"voting-api/config"
	"voting-api/db"
	"voting-api/handler"
	"voting-api/logger"
	"voting-api/model"
	"voting-api/repository"
	"voting-api/router"
	"voting-api/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	start, end, err := config.AppConfig.ElectionWindow()
	if err != nil {
		logger.Log.Fatalf("Invalid election window: %v", err)
	}
	window := model.ElectionWindow{
		ElectionID: config.AppConfig.Election.ID,
		Start:      start,
		End:        end,
	}

	// --- Ledger Anchoring ---
	// The ballot box in Postgres is the source of truth; anchoring is
	// best-effort audit replication and is disabled when no RPC URL is set.
	var ledger anchor.Ledger = anchor.NopLedger{}
	if cfg := config.AppConfig.Ledger; cfg.RPCURL != "" {
		ethLedger, err := anchor.NewEthereumLedger(cfg.RPCURL, cfg.ContractAddress, cfg.PrivateKey, cfg.ChainID)
		if err != nil {
			logger.Log.Fatalf("Error initializing ledger anchoring: %v", err)
		}
		ledger = ethLedger
		logger.Log.WithField("contract", cfg.ContractAddress).Info("Ledger anchoring enabled")
	}
	anchorWorker := anchor.NewWorker(ledger, 256)
	anchorWorker.Start()

	// --- Wiring All Layers Together ---
	identityRepo := repository.NewIdentityRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	voterRepo := repository.NewVoterRepository(database)
	candidateRepo := repository.NewCandidateRepository(database)
	ballotRepo := repository.NewBallotRepository(database)

	authService := service.NewAuthService(identityRepo, tokenRepo)
	voterService := service.NewVoterService(voterRepo)
	candidateService := service.NewCandidateService(candidateRepo, redisClient)
	ballotService := service.NewBallotService(ballotRepo, voterRepo, candidateRepo, window, anchorWorker)

	authHandler := handler.NewAuthHandler(authService)
	voterHandler := handler.NewVoterHandler(voterService)
	candidateHandler := handler.NewCandidateHandler(candidateService)
	voteHandler := handler.NewVoteHandler(ballotService)

	r := router.NewRouter(authHandler, voterHandler, candidateHandler, voteHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	anchorWorker.Stop()
	logger.Log.Info("Server exited properly")
}
