package mapper

import (
	"time"

	vehicledomain "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
)

// Vehicle is the transport-layer shape of a catalog entry.
type Vehicle struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Color     string    `json:"color"`
	Price     float64   `json:"price"`
	IsSold    bool      `json:"isSold"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VehicleSale extends the vehicle shape with the sale metadata returned by
// the sold listing.
type VehicleSale struct {
	Vehicle
	PaymentStatus string     `json:"paymentStatus,omitempty"`
	PaymentCode   string     `json:"paymentCode,omitempty"`
	BuyerCPF      string     `json:"buyerCpf,omitempty"`
	SoldAt        *time.Time `json:"soldAt,omitempty"`
}

// FromDomain converts a domain vehicle to the transport representation.
func FromDomain(v *vehicledomain.Vehicle) Vehicle {
	if v == nil {
		return Vehicle{}
	}
	return Vehicle{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Price:     v.Price,
		IsSold:    v.IsSold,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// FromDomainList converts a vehicle slice, preserving its order.
func FromDomainList(list []*vehicledomain.Vehicle) []Vehicle {
	out := make([]Vehicle, 0, len(list))
	for _, v := range list {
		out = append(out, FromDomain(v))
	}
	return out
}

// FromDomainSale converts a sold vehicle, including its sale metadata.
func FromDomainSale(v *vehicledomain.Vehicle) VehicleSale {
	if v == nil {
		return VehicleSale{}
	}
	sale := VehicleSale{
		Vehicle:       FromDomain(v),
		PaymentStatus: string(v.PaymentStatus),
		PaymentCode:   v.PaymentCode,
		BuyerCPF:      v.BuyerCPF,
	}
	if v.SoldAt != nil {
		soldAt := *v.SoldAt
		sale.SoldAt = &soldAt
	}
	return sale
}

// FromDomainSaleList converts a sold-vehicle slice, preserving its order.
func FromDomainSaleList(list []*vehicledomain.Vehicle) []VehicleSale {
	out := make([]VehicleSale, 0, len(list))
	for _, v := range list {
		out = append(out, FromDomainSale(v))
	}
	return out
}
