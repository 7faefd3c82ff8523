// Package http wires the gin transport to the vehicle catalog service.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	vehiclemapper "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/http/mapper"
	vehicleapp "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application"
	vehicletypes "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application/types"
	vehicledomain "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
	vehicleports "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
	apierrors "github.com/Apurer/go-vehicle-catalog/internal/shared/errors"
)

// VehicleAPI wires HTTP transport with the catalog service and the payment orchestrator.
type VehicleAPI struct {
	service  vehicleports.Service
	payments vehicleports.PaymentOrchestrator
}

// NewVehicleAPI creates a VehicleAPI backed by the provided service.
func NewVehicleAPI(service vehicleports.Service, payments vehicleports.PaymentOrchestrator) VehicleAPI {
	return VehicleAPI{service: service, payments: payments}
}

type vehiclePayload struct {
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
	Color string  `json:"color"`
	Price float64 `json:"price"`
}

type paymentWebhookPayload struct {
	VehicleID   string `json:"vehicleId"`
	PaymentCode string `json:"paymentCode"`
	Status      string `json:"status"`
	BuyerCPF    string `json:"buyerCpf"`
}

// Post /api/vehicles
// Register a new vehicle for sale
func (api *VehicleAPI) CreateVehicle(c *gin.Context) {
	var payload vehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := vehicletypes.CreateVehicleInput{VehicleMutationInput: toMutationInput(payload)}
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehiclemapper.FromDomain(created))
}

// Put /api/vehicles/:id
// Update the descriptive attributes of an existing vehicle
func (api *VehicleAPI) UpdateVehicle(c *gin.Context) {
	var payload vehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := vehicletypes.UpdateVehicleInput{ID: c.Param("id"), VehicleMutationInput: toMutationInput(payload)}
	updated, err := api.service.Update(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiclemapper.FromDomain(updated))
}

// Delete /api/vehicles/:id
// Remove an unsold vehicle from the catalog
func (api *VehicleAPI) DeleteVehicle(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Get /api/vehicles/:id
// Find a vehicle by identifier
func (api *VehicleAPI) GetVehicleByID(c *gin.Context) {
	vehicle, err := api.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiclemapper.FromDomain(vehicle))
}

// Get /api/vehicles/available
// List unsold vehicles ordered by price ascending
func (api *VehicleAPI) GetAvailableVehicles(c *gin.Context) {
	vehicles, err := api.service.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiclemapper.FromDomainList(vehicles))
}

// Get /api/vehicles/sold
// List sold vehicles with their sale metadata, ordered by price ascending
func (api *VehicleAPI) GetSoldVehicles(c *gin.Context) {
	vehicles, err := api.service.ListSold(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiclemapper.FromDomainSaleList(vehicles))
}

// Get /api/vehicles/search
// Search the catalog by combinable criteria
func (api *VehicleAPI) SearchVehicles(c *gin.Context) {
	criteria, err := searchCriteriaFromQuery(c)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	vehicles, err := api.service.Search(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiclemapper.FromDomainList(vehicles))
}

// Post /api/vehicles/payment
// Payment-status webhook. Unknown vehicles and status strings report
// updated=false instead of an error response.
func (api *VehicleAPI) UpdatePaymentStatus(c *gin.Context) {
	var payload paymentWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := vehicletypes.PaymentNotificationInput{
		VehicleID:   payload.VehicleID,
		PaymentCode: payload.PaymentCode,
		Status:      payload.Status,
		BuyerCPF:    payload.BuyerCPF,
	}
	updated, err := api.notifyPayment(c, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (api *VehicleAPI) notifyPayment(c *gin.Context, input vehicletypes.PaymentNotificationInput) (bool, error) {
	if api.payments != nil {
		return api.payments.NotifyPayment(c.Request.Context(), input)
	}
	return api.service.UpdatePaymentStatus(c.Request.Context(), input)
}

func toMutationInput(payload vehiclePayload) vehicletypes.VehicleMutationInput {
	return vehicletypes.VehicleMutationInput{
		Brand: payload.Brand,
		Model: payload.Model,
		Year:  payload.Year,
		Color: payload.Color,
		Price: payload.Price,
	}
}

func searchCriteriaFromQuery(c *gin.Context) (vehicledomain.SearchCriteria, error) {
	criteria := vehicledomain.SearchCriteria{
		Brand: c.Query("brand"),
		Model: c.Query("model"),
		Color: c.Query("color"),
	}
	var err error
	if criteria.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return criteria, err
	}
	if criteria.Year, err = queryInt(c, "year"); err != nil {
		return criteria, err
	}
	if criteria.MinYear, err = queryInt(c, "minYear"); err != nil {
		return criteria, err
	}
	if criteria.MaxYear, err = queryInt(c, "maxYear"); err != nil {
		return criteria, err
	}
	if raw, ok := c.GetQuery("isAvailable"); ok {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, err
		}
		criteria.IsAvailable = &available
	}
	return criteria, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vehicleports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("vehicle", c.Param("id")))
	case errors.Is(err, vehicleapp.ErrInvalidInput):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, vehicleapp.ErrVehicleSold):
		apierrors.Respond(c, apierrors.ErrConflict.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}
