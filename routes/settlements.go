package routes

import (
	"fanloop-backend/handlers/settlements"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SettlementsRoutes(r *gin.Engine) {
	settlementsRoutes := r.Group("/creators/:creatorId")
	settlementsRoutes.Use(middleware.JWTAuth())
	{
		settlementsRoutes.GET("/settlements", settlements.GetSettlements)
		settlementsRoutes.GET("/settlement-items", settlements.GetSettlementItems)
	}

	adminRoutes := r.Group("/admin/creators/:creatorId")
	adminRoutes.Use(middleware.AdminAuth())
	{
		adminRoutes.POST("/settlement-items", settlements.RecordLedgerHandler)
		adminRoutes.POST("/settlements", settlements.ConfirmMonthHandler)
	}
}
