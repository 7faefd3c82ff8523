package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
	vehicledomain "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
	vehicleports "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
)

const tracerName = "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   vehicleports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner vehicleports.Service, opts ...Option) vehicleports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Create(ctx context.Context, input vehicletypes.CreateVehicleInput) (*vehicledomain.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.Create",
		trace.WithAttributes(attribute.String("vehicle.brand", input.Brand), attribute.String("vehicle.model", input.Model)))
	defer span.End()

	s.logInfo(ctx, "registering vehicle", slog.String("brand", input.Brand), slog.String("model", input.Model))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register vehicle", slog.String("brand", input.Brand))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "vehicle registered", slog.String("vehicle.id", result.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, input vehicletypes.UpdateVehicleInput) (*vehicledomain.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.Update", trace.WithAttributes(attribute.String("vehicle.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "updating vehicle", slog.String("vehicle.id", input.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update vehicle", slog.String("vehicle.id", input.ID))
	}
	s.logInfo(ctx, "vehicle updated", slog.String("vehicle.id", result.ID))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "VehicleService.Delete", trace.WithAttributes(attribute.String("vehicle.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting vehicle", slog.String("vehicle.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete vehicle", slog.String("vehicle.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "vehicle deleted", slog.String("vehicle.id", id))
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*vehicledomain.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.GetByID", trace.WithAttributes(attribute.String("vehicle.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load vehicle", slog.String("vehicle.id", id))
	}
	return result, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]*vehicledomain.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.ListAvailable")
	defer span.End()

	result, err := s.inner.ListAvailable(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list available vehicles")
	}
	span.SetAttributes(attribute.Int("vehicles.count", len(result)))
	return result, nil
}

func (s *Service) ListSold(ctx context.Context) ([]*vehicledomain.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.ListSold")
	defer span.End()

	result, err := s.inner.ListSold(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list sold vehicles")
	}
	span.SetAttributes(attribute.Int("vehicles.count", len(result)))
	return result, nil
}

func (s *Service) Search(ctx context.Context, criteria vehicledomain.SearchCriteria) ([]*vehicledomain.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.Search")
	defer span.End()

	result, err := s.inner.Search(ctx, criteria)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "vehicle search failed")
	}
	s.metrics.recordSearch(ctx)
	span.SetAttributes(attribute.Int("vehicles.count", len(result)))
	return result, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "VehicleService.UpdatePaymentStatus",
		trace.WithAttributes(attribute.String("vehicle.id", input.VehicleID), attribute.String("payment.status", input.Status)))
	defer span.End()

	s.logInfo(ctx, "processing payment notification",
		slog.String("vehicle.id", input.VehicleID), slog.String("payment.status", input.Status))
	updated, err := s.inner.UpdatePaymentStatus(ctx, input)
	if err != nil {
		return false, s.handleError(ctx, span, err, "payment notification failed", slog.String("vehicle.id", input.VehicleID))
	}
	s.metrics.recordPayment(ctx, input.Status, updated)
	span.SetAttributes(attribute.Bool("payment.updated", updated))
	s.logInfo(ctx, "payment notification processed",
		slog.String("vehicle.id", input.VehicleID), slog.Bool("updated", updated))
	return updated, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	vehiclesCreated metric.Int64Counter
	vehiclesDeleted metric.Int64Counter
	searches        metric.Int64Counter
	payments        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("vehicles.service.registered", metric.WithDescription("Number of vehicles registered"))
	deleted, _ := m.Int64Counter("vehicles.service.deleted", metric.WithDescription("Number of vehicles deleted"))
	searches, _ := m.Int64Counter("vehicles.service.searches", metric.WithDescription("Number of catalog searches"))
	payments, _ := m.Int64Counter("vehicles.service.payment_notifications", metric.WithDescription("Number of payment notifications processed"))
	return serviceMetrics{vehiclesCreated: created, vehiclesDeleted: deleted, searches: searches, payments: payments}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.vehiclesCreated != nil {
		m.vehiclesCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.vehiclesDeleted != nil {
		m.vehiclesDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordSearch(ctx context.Context) {
	if m.searches != nil {
		m.searches.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPayment(ctx context.Context, status string, updated bool) {
	if m.payments != nil {
		m.payments.Add(ctx, 1, metric.WithAttributes(
			attribute.String("payment.status", status),
			attribute.Bool("payment.updated", updated),
		))
	}
}

var _ vehicleports.Service = (*Service)(nil)
