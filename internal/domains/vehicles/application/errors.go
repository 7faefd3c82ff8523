package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid vehicle input")
	// ErrVehicleSold signals an operation that is forbidden on a sold vehicle.
	ErrVehicleSold = errors.New("cannot delete a sold vehicle")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyBrand) ||
		errors.Is(err, domain.ErrEmptyModel) ||
		errors.Is(err, domain.ErrInvalidYear) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidPriceRange) ||
		errors.Is(err, domain.ErrInvalidYearRange) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
