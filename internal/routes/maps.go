package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/handlers"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
)

func RegisterMapsRoutes(r gin.IRouter) {
	maps := r.Group("/maps")
	maps.Use(middleware.GeneralRateLimit())
	{
		maps.GET("/init", handlers.InitializeMap)
		maps.GET("/search", handlers.SearchPlace)
		maps.GET("/location", handlers.GetLocationDetails)
		maps.GET("/directions", handlers.GetDirections)
		maps.GET("/waste-points", handlers.GetNearbyWastePoints)
	}
}
