package routes

import (
	"fanloop-backend/handlers/subscriptions"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine) {
	subsRoutes := r.Group("/subscriptions")
	subsRoutes.Use(middleware.JWTAuth())
	{
		subsRoutes.POST("/:creatorId", subscriptions.SubscribeHandler)
		subsRoutes.GET("", subscriptions.GetUserSubscriptions)
	}

	// Status, detail and deletion address the row itself, not the creator.
	subRoutes := r.Group("/subscription")
	subRoutes.Use(middleware.JWTAuth())
	{
		subRoutes.GET("/:subscriptionId", subscriptions.GetSubscriptionDetail)
		subRoutes.PATCH("/:subscriptionId/status", subscriptions.UpdateStatus)
		subRoutes.DELETE("/:subscriptionId", subscriptions.Delete)
	}
}
