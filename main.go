// main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"localmarket/controllers"
	"localmarket/middleware"
	"localmarket/routes"
	"localmarket/services"
	"localmarket/store"
	"localmarket/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	utils.SetupLogger()

	// Set the JWT secret key
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JwtKey = []byte(secret)
	} else {
		slog.Warn("JWT_SECRET not set, using insecure default key")
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	stores := store.New(client.Database(utils.DatabaseName()))
	emailService := utils.NewEmailService()

	// Initialize services
	userService := services.NewUserService(stores.Users)
	productService := services.NewProductService(stores.Products, stores.Users)
	cartService := services.NewCartService(stores.Users, stores.Products)
	orderService := services.NewOrderService(stores.Users, stores.Products, stores.Orders)
	grievanceService := services.NewGrievanceService(stores.Orders, stores.Grievances)
	analyticsService := services.NewAnalyticsService(stores.Orders, stores.Products)

	// Initialize controllers
	userController := controllers.NewUserController(userService)
	productController := controllers.NewProductController(productService, userService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService, emailService)
	grievanceController := controllers.NewGrievanceController(grievanceService, userService, emailService)
	dashboardController := controllers.NewDashboardController(analyticsService, productService)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	router.Use(middleware.RateLimit(300, time.Minute))

	routes.RegisterRoutes(router,
		userController, productController, cartController,
		orderController, grievanceController, dashboardController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	slog.Info("server listening", "port", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
