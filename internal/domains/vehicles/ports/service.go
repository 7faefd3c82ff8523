package ports

import (
	"context"

	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
)

// Service defines the catalog use cases exposed to adapters (inbound/driving port).
type Service interface {
	Create(ctx context.Context, input vehicletypes.CreateVehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, input vehicletypes.UpdateVehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]*domain.Vehicle, error)
	ListSold(ctx context.Context) ([]*domain.Vehicle, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Vehicle, error)
	UpdatePaymentStatus(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error)
}
