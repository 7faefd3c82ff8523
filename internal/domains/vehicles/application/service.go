package application

import (
	"context"
	"errors"
	"strings"

	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
)

// Service orchestrates the vehicle catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new vehicle in the catalog.
func (s *Service) Create(ctx context.Context, input vehicletypes.CreateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := domain.NewVehicle(input.Brand, input.Model, input.Year, input.Color, input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, vehicle)
}

// Update replaces the descriptive attributes of an existing vehicle.
func (s *Service) Update(ctx context.Context, input vehicletypes.UpdateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := vehicle.UpdateDetails(input.Brand, input.Model, input.Year, input.Color, input.Price); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, vehicle)
}

// Delete removes an unsold vehicle from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle.IsSold {
		return ErrVehicleSold
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) ListSold(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.repo.ListSold(ctx)
}

// Search validates the criteria and delegates the filtered query to the repository.
func (s *Service) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Vehicle, error) {
	if err := criteria.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Search(ctx, criteria)
}

// UpdatePaymentStatus records the outcome of a payment attempt. Unknown
// vehicles and unrecognized status strings report false without an error so
// webhook callers are never handed a hard failure for stale notifications.
func (s *Service) UpdatePaymentStatus(ctx context.Context, input vehicletypes.PaymentNotificationInput) (bool, error) {
	if strings.TrimSpace(input.VehicleID) == "" {
		return false, nil
	}
	status, err := domain.ParsePaymentStatus(input.Status)
	if err != nil {
		return false, nil
	}
	vehicle, err := s.repo.GetByID(ctx, input.VehicleID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := vehicle.ApplyPayment(input.PaymentCode, status, input.BuyerCPF); err != nil {
		return false, nil
	}
	if _, err := s.repo.Save(ctx, vehicle); err != nil {
		return false, err
	}
	return true, nil
}

var _ ports.Service = (*Service)(nil)
