package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/config"
	"github.com/eleccycle/eleccycle-backend/internal/auth"
	"github.com/eleccycle/eleccycle-backend/internal/bootstrap"
	"github.com/eleccycle/eleccycle-backend/internal/logging"
)

const serviceName = "eleccycle-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewLogger(serviceName, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	app, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	authClient, err := auth.NewAuthClient(app)
	if err != nil {
		logger.Fatal("auth client", zap.Error(err))
	}

	store, err := bootstrap.OpenFirestore(ctx, app)
	if err != nil {
		logger.Fatal("firestore", zap.Error(err))
	}
	defer store.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		WebAPIKey:   cfg.Firebase.WebAPIKey,
		AuthClient:  authClient,
		Store:       store,
		Redis:       rdb,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
