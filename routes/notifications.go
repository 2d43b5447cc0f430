package routes

import (
	"fanloop-backend/handlers/notifications"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func NotificationsRoutes(r *gin.Engine) {
	notificationsRoutes := r.Group("/notifications")
	notificationsRoutes.Use(middleware.JWTAuth())
	{
		notificationsRoutes.GET("", notifications.GetMyNotifications)
		notificationsRoutes.POST("/:id/read", notifications.MarkRead)
	}
}
