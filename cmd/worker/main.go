package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-vehicle-catalog/internal/app/api"
	vehicleobs "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/observability"
	vehicleapp "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application"
	paymentactivities "github.com/Apurer/go-vehicle-catalog/internal/durable/temporal/activities/payments"
	paymentworkflows "github.com/Apurer/go-vehicle-catalog/internal/durable/temporal/workflows/payments"
	platformobservability "github.com/Apurer/go-vehicle-catalog/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "vehicle-catalog-worker"
	cfg := api.LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, _, cleanupRepo := api.BuildVehicleRepository(ctx, cfg.PostgresDSN, logger)
	defer cleanupRepo()
	service := vehicleobs.New(
		vehicleapp.NewService(repo),
		vehicleobs.WithLogger(logger),
		vehicleobs.WithTracer(instruments.Tracer("internal.vehicles.application")),
		vehicleobs.WithMeter(instruments.Meter("internal.vehicles.application")),
	)
	activities := paymentactivities.NewActivities(service)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, paymentworkflows.PaymentNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(paymentworkflows.PaymentNotificationWorkflow, workflow.RegisterOptions{Name: paymentworkflows.PaymentNotificationWorkflowName})
	w.RegisterActivityWithOptions(activities.ApplyPayment, activity.RegisterOptions{Name: paymentactivities.ApplyPaymentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", paymentworkflows.PaymentNotificationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
