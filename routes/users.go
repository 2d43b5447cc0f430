package routes

import (
	"fanloop-backend/handlers/users"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	r.GET("/users/:id", users.GetUserByID)

	meRoutes := r.Group("/me")
	meRoutes.Use(middleware.JWTAuth())
	{
		meRoutes.GET("", users.GetMe)
		meRoutes.PUT("", users.UpdateMe)
		meRoutes.POST("/profile-picture", users.UploadProfilePicture)
		meRoutes.POST("/creator-application", users.ApplyAsCreator)
	}
}
