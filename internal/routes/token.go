package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/handlers"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
)

func RegisterTokenRoutes(r gin.IRouter) {
	token := r.Group("/token")
	{
		token.GET("/getValues", middleware.OptionalAuthMiddleware(), handlers.ExtractTokenValues)
	}
}
