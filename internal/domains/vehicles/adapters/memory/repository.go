package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory vehicle persistence adapter. Every read hands out
// a fresh clone so callers never share a live aggregate.
type Repository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
}

func NewRepository() *Repository {
	return &Repository{vehicles: map[string]*domain.Vehicle{}}
}

func (r *Repository) Save(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	clone := cloneVehicle(vehicle)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[clone.ID] = clone
	return cloneVehicle(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneVehicle(vehicle), nil
}

func (r *Repository) GetByPaymentCode(_ context.Context, paymentCode string) (*domain.Vehicle, error) {
	if paymentCode == "" {
		return nil, ports.ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, vehicle := range r.vehicles {
		if vehicle.PaymentCode == paymentCode {
			return cloneVehicle(vehicle), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	list := r.collect(func(v *domain.Vehicle) bool { return !v.IsSold })
	domain.SortByPrice(list)
	return list, nil
}

func (r *Repository) ListSold(ctx context.Context) ([]*domain.Vehicle, error) {
	list := r.collect(func(v *domain.Vehicle) bool { return v.IsSold })
	domain.SortByPrice(list)
	return list, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Vehicle, error) {
	return r.collect(func(*domain.Vehicle) bool { return true }), nil
}

func (r *Repository) Search(_ context.Context, criteria domain.SearchCriteria) ([]*domain.Vehicle, error) {
	list := r.collect(criteria.Matches)
	domain.SortSearchResults(list)
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *Repository) collect(keep func(*domain.Vehicle) bool) []*domain.Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		if keep(vehicle) {
			list = append(list, cloneVehicle(vehicle))
		}
	}
	return list
}

func cloneVehicle(v *domain.Vehicle) *domain.Vehicle {
	clone := *v
	if v.SoldAt != nil {
		soldAt := *v.SoldAt
		clone.SoldAt = &soldAt
	}
	return &clone
}
