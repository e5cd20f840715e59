package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Olongapo City, Philippines.
const (
	mapCenterLat   = 14.8874
	mapCenterLng   = 120.3666
	mapDefaultZoom = 13
)

// InitializeMap serves the client-side map configuration.
func InitializeMap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"mapConfig": gin.H{
			"center": gin.H{"lat": mapCenterLat, "lng": mapCenterLng},
			"zoom":   mapDefaultZoom,
			"maplibreOptions": gin.H{
				"style": "https://demotiles.maplibre.org/style.json",
			},
			"leafletOptions": gin.H{
				"preferCanvas": true,
			},
		},
	})
}

type wastePoint struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// GetNearbyWastePoints returns collection points around the given
// coordinates. Placeholder data until collection points are databased.
func GetNearbyWastePoints(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Latitude and longitude are required",
		})
		return
	}

	points := []wastePoint{
		{ID: "wp1", Name: "Olongapo City Recycling Center", Type: "recycling", Lat: lat + 0.01, Lon: lon + 0.01},
		{ID: "wp2", Name: "Community Waste Collection Point", Type: "general", Lat: lat - 0.005, Lon: lon + 0.008},
		{ID: "wp3", Name: "E-Waste Drop-off", Type: "electronic", Lat: lat + 0.008, Lon: lon - 0.003},
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "wastePoints": points})
}

// The geocoding provider integration is not wired up; these endpoints keep
// the route surface stable for the frontend.

func SearchPlace(c *gin.Context) {
	if c.Query("query") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query is required"})
		return
	}
	c.JSON(http.StatusNotImplemented, gin.H{"success": false, "message": "Geocoding service not configured"})
}

func GetLocationDetails(c *gin.Context) {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Latitude and longitude are required"})
		return
	}
	c.JSON(http.StatusNotImplemented, gin.H{"success": false, "message": "Geocoding service not configured"})
}

func GetDirections(c *gin.Context) {
	if c.Query("startLat") == "" || c.Query("startLon") == "" ||
		c.Query("endLat") == "" || c.Query("endLon") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start and end coordinates are required"})
		return
	}
	c.JSON(http.StatusNotImplemented, gin.H{"success": false, "message": "Routing service not configured"})
}
