package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/adapters/memory"
	vehicleapp "github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/application"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service := vehicleapp.NewService(memory.NewRepository())
	api := NewVehicleAPI(service, nil)
	return NewRouter(api, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func createTestVehicle(t *testing.T, router *gin.Engine, brand string, price float64) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{
		"brand": brand, "model": "Corolla", "year": 2020, "color": "Black", "price": price,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	id, ok := body["id"].(string)
	require.True(t, ok)
	return id
}

func TestCreateVehicle_Created(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{
		"brand": "Toyota", "model": "Corolla", "year": 2020, "color": "Black", "price": 25000,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Toyota", body["brand"])
	assert.Equal(t, false, body["isSold"])
}

func TestCreateVehicle_ValidationProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{
		"brand": "", "model": "Corolla", "year": 2020, "color": "Black", "price": 25000,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestGetVehicleByID_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/vehicles/missing", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestUpdateVehicle_ReplacesDetails(t *testing.T) {
	router := newTestRouter(t)
	id := createTestVehicle(t, router, "Toyota", 25000)

	rec := doJSON(t, router, http.MethodPut, "/api/vehicles/"+id, gin.H{
		"brand": "Toyota", "model": "Camry", "year": 2021, "color": "White", "price": 30000,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Camry", body["model"])
	assert.Equal(t, 30000.0, body["price"])
}

func TestDeleteVehicle_SoldIsConflict(t *testing.T) {
	router := newTestRouter(t)
	id := createTestVehicle(t, router, "Toyota", 25000)

	rec := doJSON(t, router, http.MethodPost, "/api/vehicles/payment", gin.H{
		"vehicleId": id, "paymentCode": "PAY-1", "status": "paid",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["updated"])

	rec = doJSON(t, router, http.MethodDelete, "/api/vehicles/"+id, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// The sold record is still served afterwards.
	rec = doJSON(t, router, http.MethodGet, "/api/vehicles/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteVehicle_Unsold(t *testing.T) {
	router := newTestRouter(t)
	id := createTestVehicle(t, router, "Toyota", 25000)

	rec := doJSON(t, router, http.MethodDelete, "/api/vehicles/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["deleted"])

	rec = doJSON(t, router, http.MethodGet, "/api/vehicles/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentWebhook_UnknownStatusReportsFalse(t *testing.T) {
	router := newTestRouter(t)
	id := createTestVehicle(t, router, "Toyota", 25000)

	rec := doJSON(t, router, http.MethodPost, "/api/vehicles/payment", gin.H{
		"vehicleId": id, "paymentCode": "PAY-1", "status": "refunded",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["updated"])
}

func TestListings_SplitBySaleState(t *testing.T) {
	router := newTestRouter(t)
	soldID := createTestVehicle(t, router, "Honda", 27000)
	availableID := createTestVehicle(t, router, "Toyota", 25000)

	rec := doJSON(t, router, http.MethodPost, "/api/vehicles/payment", gin.H{
		"vehicleId": soldID, "paymentCode": "PAY-1", "status": "approved", "buyerCpf": "12345678900",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/vehicles/available", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var available []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &available))
	require.Len(t, available, 1)
	assert.Equal(t, availableID, available[0]["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/vehicles/sold", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sold []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sold))
	require.Len(t, sold, 1)
	assert.Equal(t, soldID, sold[0]["id"])
	assert.Equal(t, "paid", sold[0]["paymentStatus"])
	assert.Equal(t, "PAY-1", sold[0]["paymentCode"])
	assert.Equal(t, "12345678900", sold[0]["buyerCpf"])
}

func TestSearchVehicles_FiltersAndValidates(t *testing.T) {
	router := newTestRouter(t)
	createTestVehicle(t, router, "Toyota", 25000)
	createTestVehicle(t, router, "Honda", 27000)

	rec := doJSON(t, router, http.MethodGet, "/api/vehicles/search?brand=toyota", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Toyota", results[0]["brand"])

	rec = doJSON(t, router, http.MethodGet, "/api/vehicles/search?minPrice=5000&maxPrice=1000", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/vehicles/search?minPrice=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := vehicleapp.NewService(memory.NewRepository())
	api := NewVehicleAPI(service, nil)

	router := NewRouter(api, func(context.Context) error { return nil })
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	router = NewRouter(api, func(context.Context) error { return fmt.Errorf("database down") })
	rec = doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decodeBody(t, rec)["status"])
}
