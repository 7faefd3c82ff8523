package payments

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	paymentactivities "github.com/Apurer/go-vehicle-catalog/internal/durable/temporal/activities/payments"
	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
)

const (
	// PaymentNotificationWorkflowName is the public identifier for registering the workflow.
	PaymentNotificationWorkflowName = "payments.workflows.Notification"
	// PaymentNotificationTaskQueue is the queue consumed by the worker processing payment workflows.
	PaymentNotificationTaskQueue = "PAYMENT_NOTIFICATION"
)

// PaymentNotificationWorkflowInput captures the webhook payload handed to the workflow.
type PaymentNotificationWorkflowInput struct {
	Notification vehicletypes.PaymentNotificationInput
	TraceID      string
}

// PaymentNotificationWorkflow durably applies a payment-status notification,
// retrying the catalog write until it sticks or attempts are exhausted.
func PaymentNotificationWorkflow(ctx workflow.Context, input PaymentNotificationWorkflowInput) (bool, error) {
	logger := workflow.GetLogger(ctx)
	vehicleID := input.Notification.VehicleID
	logger.Info("PaymentNotificationWorkflow started", withTraceID(input.TraceID, "vehicleId", vehicleID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var updated bool
	err := workflow.ExecuteActivity(ctx, paymentactivities.ApplyPaymentActivityName, input.Notification).Get(ctx, &updated)
	if err != nil {
		logger.Error("PaymentNotificationWorkflow failed", withTraceID(input.TraceID, "vehicleId", vehicleID, "error", err)...)
		return false, err
	}
	logger.Info("PaymentNotificationWorkflow completed", withTraceID(input.TraceID, "vehicleId", vehicleID, "updated", updated)...)
	return updated, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
