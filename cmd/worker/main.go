package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/config"
	"github.com/eleccycle/eleccycle-backend/internal/audit"
	"github.com/eleccycle/eleccycle-backend/internal/auth"
	"github.com/eleccycle/eleccycle-backend/internal/bootstrap"
	"github.com/eleccycle/eleccycle-backend/internal/logging"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/repository"
)

const serviceName = "eleccycle-audit-worker"

// The worker periodically checks every profile's cumulative counters
// against the sum of that user's recorded activities. Drift means a
// partial write slipped past a client retry; the worker reports it but
// never rewrites counters itself.
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

	ctx := context.Background()

	app, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	store, err := bootstrap.OpenFirestore(ctx, app)
	if err != nil {
		logger.Fatal("firestore", zap.Error(err))
	}
	defer store.Close()

	profileRepo := repository.NewProfileRepository(store)
	activityRepo := repository.NewActivityRepository(store)
	auditor := audit.NewAuditor(profileRepo, activityRepo, logger)

	runAudit := func() {
		drifts, err := auditor.Run(ctx)
		if err != nil {
			logger.Error("audit run failed", zap.Error(err))
			return
		}
		if len(drifts) > 0 {
			logger.Warn("audit found drift", zap.Int("count", len(drifts)))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Worker.AuditSchedule, runAudit); err != nil {
		logger.Fatal("invalid audit schedule",
			zap.String("schedule", cfg.Worker.AuditSchedule), zap.Error(err))
	}

	logger.Info("audit worker started", zap.String("schedule", cfg.Worker.AuditSchedule))
	runAudit()
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	<-c.Stop().Done()
}
