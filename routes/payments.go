package routes

import (
	"fanloop-backend/handlers/payments"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine) {
	ordersRoutes := r.Group("/orders")
	ordersRoutes.Use(middleware.JWTAuth())
	{
		ordersRoutes.POST("", payments.CreateOrder)
		ordersRoutes.GET("", payments.GetMyOrders)
	}

	paymentsRoutes := r.Group("/payments")
	paymentsRoutes.Use(middleware.JWTAuth())
	{
		paymentsRoutes.POST("/confirm", payments.ConfirmPayment)
	}
}
