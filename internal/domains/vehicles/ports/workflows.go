package ports

import (
	"context"

	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
)

// PaymentOrchestrator runs the payment notification flow, either inline or
// through a durable workflow engine.
type PaymentOrchestrator interface {
	NotifyPayment(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error)
}
