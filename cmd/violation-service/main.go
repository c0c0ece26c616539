package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loopwear/loopwear-violation-service/internal/app/background"
	"github.com/loopwear/loopwear-violation-service/internal/config"
	publisher "github.com/loopwear/loopwear-violation-service/internal/infrastructure/kafka"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/metrics"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/migrate"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/repository"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/storage"
	arbitrationuc "github.com/loopwear/loopwear-violation-service/internal/usecase/arbitration"
	orderstateuc "github.com/loopwear/loopwear-violation-service/internal/usecase/orderstate"
	settlementuc "github.com/loopwear/loopwear-violation-service/internal/usecase/settlement"
	violationuc "github.com/loopwear/loopwear-violation-service/internal/usecase/violation"
)

// application is the wired service. The violation and arbitration
// usecases are the synchronous surface consumed by the API gateway;
// the order-state and settlement usecases run as background workers.
type application struct {
	violationUsecase   violationuc.ViolationUsecase
	arbitrationUsecase arbitrationuc.ArbitrationUsecase
	settlementUsecase  settlementuc.SettlementUsecase
	orderStateUsecase  orderstateuc.OrderStateUsecase
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.ViolationDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.ViolationDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Evidence store gateway
	evidenceStorage, err := storage.NewCloudEvidenceStorage(ctx, cfg.EvidenceStorage.Bucket, cfg.EvidenceStorage.ProjectID, cfg.EvidenceStorage.CredentialsPath)
	if err != nil {
		log.Fatalf("failed to init evidence storage: %v", err)
	}
	defer evidenceStorage.Close()

	// Notification gateway
	notifier := publisher.NewNotificationPublisher(publisher.KafkaConfig{
		Brokers: []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)},
		Topic:   cfg.KafkaService.Topic,
	})
	defer notifier.Close()

	violationMetrics := metrics.NewViolationMetrics(prometheus.DefaultRegisterer)

	// Repositories
	violationRepo := repository.NewDefaultViolationRepository(db)
	resolutionRepo := repository.NewDefaultResolutionRepository(db)
	settlementRepo := repository.NewDefaultSettlementRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	userRepo := repository.NewDefaultUserRepository(db)
	chatRepo := repository.NewDefaultChatRepository(db)

	// Usecases
	app := &application{
		violationUsecase:   violationuc.NewDefaultViolationUsecase(violationRepo, orderRepo, evidenceStorage, notifier, violationMetrics),
		arbitrationUsecase: arbitrationuc.NewDefaultArbitrationUsecase(violationRepo, resolutionRepo, orderRepo, userRepo, chatRepo, notifier, violationMetrics),
		settlementUsecase:  settlementuc.NewDefaultSettlementUsecase(violationRepo, resolutionRepo, orderRepo, settlementRepo, violationMetrics),
		orderStateUsecase:  orderstateuc.NewDefaultOrderStateUsecase(orderRepo, notifier, violationMetrics),
	}

	// Background workers: order-state time-driver and settlement
	tasks := background.NewBackgroundTasks(
		app.orderStateUsecase,
		app.settlementUsecase,
		cfg.Background.OrderSweepInterval,
		cfg.Background.SettlementInterval,
	)
	tasks.StartAll(ctx)

	// Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port),
		Handler: mux,
	}

	go func() {
		slog.Info("metrics server started", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics server shutdown failed", "error", err.Error())
	}
}
