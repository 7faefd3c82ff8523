package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether the persistence collaborator is reachable.
type HealthCheck func(ctx context.Context) error

// NewRouter builds the gin engine with the catalog routes and a health probe.
// Middleware must be installed here, before the routes are registered.
func NewRouter(api VehicleAPI, health HealthCheck, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)

	vehicles := router.Group("/api/vehicles")
	{
		vehicles.POST("", api.CreateVehicle)
		vehicles.GET("/available", api.GetAvailableVehicles)
		vehicles.GET("/sold", api.GetSoldVehicles)
		vehicles.GET("/search", api.SearchVehicles)
		vehicles.POST("/payment", api.UpdatePaymentStatus)
		vehicles.GET("/:id", api.GetVehicleByID)
		vehicles.PUT("/:id", api.UpdateVehicle)
		vehicles.DELETE("/:id", api.DeleteVehicle)
	}

	router.GET("/health", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return router
}
