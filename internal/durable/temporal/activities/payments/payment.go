package payments

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
	vehicleports "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
)

// ApplyPaymentActivityName records a payment-status notification against the catalog.
const ApplyPaymentActivityName = "payments.activities.ApplyPayment"

// Activities groups activities that operate on the vehicle catalog.
type Activities struct {
	service vehicleports.Service
}

// NewActivities wires the catalog service into the Temporal activities bundle.
func NewActivities(service vehicleports.Service) *Activities {
	return &Activities{service: service}
}

// ApplyPayment delegates the payment notification to the catalog service and
// reports whether a vehicle was updated.
func (a *Activities) ApplyPayment(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("payment activity not initialized", "vehicleId", input.VehicleID)
		return false, errors.New("payment activity not initialized")
	}
	logger.Info("ApplyPayment activity started", "vehicleId", input.VehicleID, "status", input.Status)
	updated, err := a.service.UpdatePaymentStatus(ctx, input)
	if err != nil {
		logger.Error("ApplyPayment activity failed", "vehicleId", input.VehicleID, "error", err)
		return false, err
	}
	logger.Info("ApplyPayment activity completed", "vehicleId", input.VehicleID, "updated", updated)
	return updated, nil
}
