package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	vehiclehttp "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/http"
	vehiclememory "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/memory"
	vehicleobs "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/observability"
	vehiclepostgres "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/persistence/postgres"
	vehicleworkflows "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/workflows"
	vehicleapp "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application"
	vehicleports "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
	platformobservability "github.com/Apurer/go-vehicle-catalog/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-vehicle-catalog/internal/platform/postgres"
)

// Run boots the vehicle catalog HTTP API with observability, the repository,
// and the payment workflow orchestration wired.
func Run(ctx context.Context) error {
	const serviceName = "vehicle-catalog-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, db, cleanupRepo := BuildVehicleRepository(ctx, cfg.PostgresDSN, logger)
	defer cleanupRepo()

	coreService := vehicleapp.NewService(repo)
	service := vehicleobs.New(
		coreService,
		vehicleobs.WithLogger(logger),
		vehicleobs.WithTracer(instruments.Tracer("internal.vehicles.application")),
		vehicleobs.WithMeter(instruments.Meter("internal.vehicles.application")),
	)

	var payments vehicleports.PaymentOrchestrator = vehicleworkflows.NewInlinePaymentWorkflows(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, applying payment notifications inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		payments = vehicleworkflows.NewTemporalPaymentWorkflows(temporalClient)
		logger.Info("Temporal payment workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := vehiclehttp.NewRouter(
		vehiclehttp.NewVehicleAPI(service, payments),
		healthCheck(db),
		otelgin.Middleware(serviceName),
	)

	addr := ":" + cfg.Port
	logger.Info("vehicle catalog API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("vehicle catalog API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// BuildVehicleRepository selects postgres when a DSN is configured and falls
// back to the in-memory adapter otherwise. The returned *gorm.DB is nil for
// the memory case.
func BuildVehicleRepository(ctx context.Context, dsn string, logger *slog.Logger) (vehicleports.Repository, *gorm.DB, func()) {
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory vehicle repository")
		return vehiclememory.NewRepository(), nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return vehiclememory.NewRepository(), nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return vehiclememory.NewRepository(), nil, func() {}
	}
	logger.Info("vehicle repository configured with postgres")
	return vehiclepostgres.NewRepository(db), db, func() { _ = sqlDB.Close() }
}

func healthCheck(db *gorm.DB) vehiclehttp.HealthCheck {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return platformpostgres.Ping(ctx, db)
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
