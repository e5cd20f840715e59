package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/handlers"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
)

func RegisterListingRoutes(r gin.IRouter) {
	listings := r.Group("/listings")
	listings.Use(middleware.AuthMiddleware())
	{
		listings.POST("", middleware.UploadRateLimit(), handlers.CreateListing)
		listings.GET("", handlers.GetAllListings)

		// Specific paths before the :id wildcard.
		listings.GET("/metrics", handlers.GetListingMetricsBulk)
		listings.GET("/:id/metrics", handlers.GetListingMetrics)
		listings.POST("/:id/like", handlers.ToggleLikeListing)

		listings.GET("/:id", handlers.GetListingByID)
		listings.PATCH("/:id", middleware.UploadRateLimit(), handlers.UpdateListing)
		listings.DELETE("/:id", handlers.DeleteListing)

		listings.POST("/comment/:listingId", handlers.AddCommentToListing)
		listings.GET("/comment/:listingId", handlers.GetAllCommentsOnListing)
		listings.DELETE("/comment/:commentId", handlers.DeleteCommentOnListing)
	}
}
