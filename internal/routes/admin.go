package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/handlers"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
)

func RegisterAdminRoutes(r gin.IRouter) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", handlers.GetAllUsers)
		admin.PATCH("/users/:id/suspend", handlers.SuspendUser)
		admin.PATCH("/users/:id/ban", handlers.BanUser)
		admin.PATCH("/users/:id/activate", handlers.ActivateUser)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)

		admin.GET("/reports", handlers.AdminGetAllReports)
		admin.GET("/reports/download/pdf", handlers.DownloadReportsPDF)
		admin.GET("/reports/:id", handlers.ViewReport)
		admin.PATCH("/reports/:id/manage", handlers.ResolveReport)

		admin.GET("/schedules", handlers.GetAllSchedules)
		admin.PATCH("/schedules/edit", handlers.EditSchedule)

		admin.GET("/challenges", handlers.GetAllChallenges)
		admin.POST("/challenges", handlers.CreateChallenge)
		admin.GET("/challenges/:id", handlers.GetChallengeByID)
		admin.DELETE("/challenges/:id", handlers.DeleteChallenge)
		admin.GET("/challenges/:id/submissions", handlers.GetSubmissionsForChallenge)
		admin.PATCH("/submissions/:id/reward", handlers.RewardSubmission)
	}
}
