package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"localmarket/controllers"
	"localmarket/middleware"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	grievanceController *controllers.GrievanceController,
	dashboardController *controllers.DashboardController,
) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.Handle("/metrics", middleware.MetricsHandler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Authenticated routes
	auth := router.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware)
	auth.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	auth.HandleFunc("/profile/change-password", userController.ChangePassword).Methods("POST")
	auth.HandleFunc("/dashboard", userController.Dashboard).Methods("GET")

	// Vendor routes
	vendor := router.PathPrefix("/").Subrouter()
	vendor.Use(middleware.AuthMiddleware, middleware.VendorOnly)
	vendor.HandleFunc("/marketplace", productController.Marketplace).Methods("GET")
	vendor.HandleFunc("/community", userController.Community).Methods("GET")
	vendor.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	vendor.HandleFunc("/cart/add/{id}", cartController.AddToCart).Methods("POST")
	vendor.HandleFunc("/cart/remove/{id}", cartController.RemoveFromCart).Methods("POST")
	vendor.HandleFunc("/orders/checkout", orderController.Checkout).Methods("POST")
	vendor.HandleFunc("/orders/history", orderController.History).Methods("GET")
	vendor.HandleFunc("/orders/rate/{id}", orderController.Rate).Methods("POST")
	vendor.HandleFunc("/grievances", grievanceController.Mine).Methods("GET")
	vendor.HandleFunc("/grievances/file/{orderId}", grievanceController.File).Methods("POST")

	// Supplier routes
	supplier := router.PathPrefix("/").Subrouter()
	supplier.Use(middleware.AuthMiddleware, middleware.SupplierOnly)
	supplier.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	supplier.HandleFunc("/products/mine", productController.MyProducts).Methods("GET")
	supplier.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	supplier.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	supplier.HandleFunc("/orders/manage", orderController.Manage).Methods("GET")
	supplier.HandleFunc("/orders/update-status/{id}", orderController.UpdateStatus).Methods("POST")
	supplier.HandleFunc("/dashboard/supplier", dashboardController.SupplierDashboard).Methods("GET")
	supplier.HandleFunc("/grievances/against-me", grievanceController.AgainstMe).Methods("GET")
	supplier.HandleFunc("/grievances/note/{id}", grievanceController.AddNote).Methods("POST")

	// Single-product lookup lives in its own subrouter registered after the
	// supplier routes so /products/mine wins over the {id} pattern.
	catalog := router.PathPrefix("/products").Subrouter()
	catalog.Use(middleware.AuthMiddleware)
	catalog.HandleFunc("/{id}", productController.GetProductByID).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware, middleware.AdminOnly)
	admin.HandleFunc("/grievances", grievanceController.All).Methods("GET")
	admin.HandleFunc("/grievances/update/{id}", grievanceController.Resolve).Methods("POST")
}
