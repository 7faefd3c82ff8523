package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
	paymentworkflows "github.com/Apurer/go-vehicle-catalog/internal/durable/temporal/workflows/payments"
)

var (
	_ ports.PaymentOrchestrator = (*TemporalPaymentWorkflows)(nil)
	_ ports.PaymentOrchestrator = (*InlinePaymentWorkflows)(nil)
)

// TemporalPaymentWorkflows starts payment workflows on a Temporal cluster.
type TemporalPaymentWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPaymentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPaymentWorkflows(c client.Client) *TemporalPaymentWorkflows {
	return &TemporalPaymentWorkflows{client: c, taskQueue: paymentworkflows.PaymentNotificationTaskQueue}
}

// NotifyPayment starts the durable workflow that applies a payment notification.
// Re-delivered webhooks map to the same workflow ID, so a duplicate delivery
// joins the already-running execution instead of applying the status twice.
func (o *TemporalPaymentWorkflows) NotifyPayment(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error) {
	if o == nil || o.client == nil {
		return false, errors.New("temporal payment workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildNotificationWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		paymentworkflows.PaymentNotificationWorkflowName,
		paymentworkflows.PaymentNotificationWorkflowInput{Notification: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var updated bool
			if err := existingRun.Get(ctx, &updated); err != nil {
				return false, err
			}
			return updated, nil
		}
		return false, err
	}
	var updated bool
	if err := run.Get(ctx, &updated); err != nil {
		return false, err
	}
	return updated, nil
}

// InlinePaymentWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlinePaymentWorkflows struct {
	service ports.Service
}

// NewInlinePaymentWorkflows wraps the catalog service for synchronous execution.
func NewInlinePaymentWorkflows(service ports.Service) *InlinePaymentWorkflows {
	return &InlinePaymentWorkflows{service: service}
}

// NotifyPayment delegates to the application service without durable orchestration.
func (o *InlinePaymentWorkflows) NotifyPayment(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error) {
	if o == nil || o.service == nil {
		return false, errors.New("inline payment workflows not configured")
	}
	return o.service.UpdatePaymentStatus(ctx, input)
}

func buildNotificationWorkflowID(input vehicletypes.PaymentNotificationInput) string {
	sum := sha256.Sum256([]byte(input.VehicleID + "|" + input.PaymentCode + "|" + input.Status))
	// First 16 hex chars keep workflow IDs readable while staying deterministic per delivery.
	return fmt.Sprintf("payment-notification-%s", hex.EncodeToString(sum[:8]))
}

func workflowTraceComponent(ctx context.Context) string {
	spanContext := oteltrace.SpanContextFromContext(ctx)
	if spanContext.HasTraceID() {
		return spanContext.TraceID().String()
	}
	return ""
}
