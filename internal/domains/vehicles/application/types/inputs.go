// Package types holds the use-case input shapes shared by transport adapters
// and workflow payloads.
package types

// VehicleMutationInput carries the descriptive attributes of a vehicle.
type VehicleMutationInput struct {
	Brand string
	Model string
	Year  int
	Color string
	Price float64
}

// CreateVehicleInput registers a new vehicle for sale.
type CreateVehicleInput struct {
	VehicleMutationInput
}

// UpdateVehicleInput replaces the descriptive attributes of an existing vehicle.
type UpdateVehicleInput struct {
	ID string
	VehicleMutationInput
}

// PaymentNotificationInput is the payload of a payment-status webhook.
// The vehicle is resolved by VehicleID; PaymentCode and BuyerCPF are stored
// as sale metadata.
type PaymentNotificationInput struct {
	VehicleID   string
	PaymentCode string
	Status      string
	BuyerCPF    string
}
