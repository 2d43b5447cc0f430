package main

import (
	"log"
	"os"

	"fanloop-backend/db"
	"fanloop-backend/handlers/payments"
	"fanloop-backend/pkg/gateway"
	"fanloop-backend/routes"
	"fanloop-backend/scheduler"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title Fanloop API
// @version 1.0
// @description Creator subscription platform: subscriptions, paid memberships, posts, reports and settlements
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Profile picture upload will not work properly.")
	}

	payments.Gateway = gateway.NewHTTPClient()

	scheduler.Start()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
