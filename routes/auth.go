package routes

import (
	"fanloop-backend/handlers/auth"
	"fanloop-backend/handlers/ping"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	r.GET("/ping", ping.Ping)
	r.POST("/register", auth.CreateUser)
	r.POST("/login", auth.Login)
	r.POST("/refresh", auth.Refresh)
}
