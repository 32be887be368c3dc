package handler

import (
	"errors"
	"log"
	"net/http"

	"roadwatch/backend/internal/geocode"

	"github.com/gin-gonic/gin"
)

type geocodeRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Geocode relays a coordinate pair to the external provider and returns
// the resolved address. Provider failures are reported with the provider's
// status; network failures stay generic.
func (h *Handler) Geocode(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lon == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Latitude and longitude not provided."})
		return
	}

	address, err := h.Geocoder.Reverse(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		var apiErr *geocode.APIError
		switch {
		case errors.Is(err, geocode.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server is not configured with a geocoding API key."})
		case errors.As(err, &apiErr):
			log.Printf("ERROR: Geocoding provider returned status %s: %s", apiErr.Status, apiErr.Message)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": apiErr.Error()})
		default:
			log.Printf("ERROR: Geocoding request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Network error fetching location."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"address": address,
		"lat":     *req.Lat,
		"lon":     *req.Lon,
	})
}
