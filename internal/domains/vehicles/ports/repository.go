package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
)

var ErrNotFound = errors.New("vehicle not found")

// Repository persists vehicle aggregates and exposes the catalog views.
// Listing methods return price-ascending order; Search orders by
// (sold flag, price) ascending.
type Repository interface {
	Save(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByPaymentCode(ctx context.Context, paymentCode string) (*domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]*domain.Vehicle, error)
	ListSold(ctx context.Context) ([]*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}
