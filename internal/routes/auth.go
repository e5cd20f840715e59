package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/handlers"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", handlers.Signup)
		auth.POST("/login", handlers.Login)
		auth.GET("/check", middleware.OptionalAuthMiddleware(), handlers.CheckAuth)
		auth.POST("/logout", handlers.Logout)
		auth.POST("/forgot-password", handlers.ForgotPassword)
		auth.POST("/reset-password/:token", handlers.ResetPassword)
		auth.GET("/verify-email/:token", handlers.VerifyEmail)
	}
}
