package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const minCatalogYear = 1900

var (
	ErrEmptyBrand    = errors.New("vehicle brand is required")
	ErrEmptyModel    = errors.New("vehicle model is required")
	ErrInvalidYear   = errors.New("vehicle year is out of range")
	ErrNegativePrice = errors.New("vehicle price must be greater or equal to zero")
)

// Vehicle represents a single car offered for sale in the catalog.
type Vehicle struct {
	ID            string
	Brand         string
	Model         string
	Year          int
	Color         string
	Price         float64
	IsSold        bool
	PaymentStatus PaymentStatus
	PaymentCode   string
	BuyerCPF      string
	SoldAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewVehicle validates the invariants and builds a new, unsold Vehicle aggregate.
func NewVehicle(brand, model string, year int, color string, price float64) (*Vehicle, error) {
	now := time.Now().UTC()
	v := &Vehicle{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := v.applyDetails(brand, model, year, color, price); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateDetails replaces the descriptive attributes. Sale state is untouched.
func (v *Vehicle) UpdateDetails(brand, model string, year int, color string, price float64) error {
	if err := v.applyDetails(brand, model, year, color, price); err != nil {
		return err
	}
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (v *Vehicle) applyDetails(brand, model string, year int, color string, price float64) error {
	if strings.TrimSpace(brand) == "" {
		return ErrEmptyBrand
	}
	if strings.TrimSpace(model) == "" {
		return ErrEmptyModel
	}
	if !YearInRange(year) {
		return ErrInvalidYear
	}
	if price < 0 {
		return ErrNegativePrice
	}
	v.Brand = brand
	v.Model = model
	v.Year = year
	v.Color = color
	v.Price = price
	return nil
}

// ApplyPayment transitions the payment state and derives the sold flag.
// Any canonical status overwrites the previous one; re-applying the same
// status succeeds and keeps the original sale timestamp. The payment code,
// once provided, is kept for audit across later transitions.
func (v *Vehicle) ApplyPayment(paymentCode string, status PaymentStatus, buyerCPF string) error {
	if !status.Valid() {
		return ErrUnknownPaymentStatus
	}
	now := time.Now().UTC()
	v.PaymentStatus = status
	if paymentCode != "" {
		v.PaymentCode = paymentCode
	}
	if buyerCPF != "" {
		v.BuyerCPF = buyerCPF
	}
	if status == PaymentPaid {
		v.IsSold = true
		if v.SoldAt == nil {
			soldAt := now
			v.SoldAt = &soldAt
		}
	} else {
		v.IsSold = false
		v.SoldAt = nil
	}
	v.UpdatedAt = now
	return nil
}

// YearInRange reports whether a model year is plausible for the catalog.
func YearInRange(year int) bool {
	return year >= minCatalogYear && year <= time.Now().Year()+1
}
