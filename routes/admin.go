package routes

import (
	"fanloop-backend/handlers/notifications"
	"fanloop-backend/handlers/reports"
	"fanloop-backend/handlers/users"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AdminAuth())
	{
		adminRoutes.GET("/reports", reports.GetAllReports)
		adminRoutes.POST("/posts/:id/restore", reports.RestorePost)
		adminRoutes.DELETE("/posts/:id", reports.DeletePost)
		adminRoutes.POST("/comments/:id/restore", reports.RestoreComment)
		adminRoutes.DELETE("/comments/:id", reports.DeleteComment)

		adminRoutes.GET("/creator-applications", users.GetCreatorApplications)
		adminRoutes.PATCH("/creator-applications/:id", users.ReviewCreatorApplication)

		adminRoutes.POST("/announcements", notifications.BroadcastAnnouncement)
	}
}
