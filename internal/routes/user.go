package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/handlers"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/schedules", handlers.GetAllSchedules)

		user.GET("/reports", handlers.GetMyReports)
		user.POST("/report", middleware.UploadRateLimit(), handlers.CreateReport)
		user.PATCH("/report/:id", middleware.UploadRateLimit(), handlers.EditReport)

		user.POST("/wastelog", handlers.AddWasteLog)
		user.GET("/wastelogs", handlers.GetWasteLogs)
		user.DELETE("/wastelog/:id", handlers.DeleteWasteLog)

		user.GET("/leaderboard", handlers.GetLeaderboard)

		user.GET("/challenges", handlers.GetAllChallenges)
		user.GET("/challenges/:id", handlers.GetChallengeByID)
		user.POST("/challenges/submit/:challengeId", middleware.UploadRateLimit(), handlers.SubmitEntry)
		user.POST("/challenges/unlock", handlers.UnlockChallengeTier)

		user.GET("/profile", handlers.ViewProfile)
		user.PATCH("/profile", handlers.EditProfile)
		user.PATCH("/profile/password", handlers.ChangePassword)
		user.DELETE("/profile", handlers.DeleteAccount)
	}
}
