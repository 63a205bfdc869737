package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"droneshop/internal/config"
	"droneshop/internal/database"
	"droneshop/internal/handlers"
	"droneshop/internal/middleware"
	"droneshop/internal/payments"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureRegistrationIndexes(db); err != nil {
		log.Printf("registration index warning: %v", err)
	}

	gateway := payments.NewGateway(config.AppEnv.RazorpayKeyID, config.AppEnv.RazorpayKeySecret)

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))

	r.POST("/orders/create", handlers.CreateOrder(db, gateway, config.AppEnv.JWTSecret, config.AppEnv.Currency))
	r.POST("/orders/verify", handlers.VerifyPayment(db, gateway))
	r.GET("/orders/:orderId", handlers.GetOrder(db))

	r.GET("/workshops", handlers.GetWorkshops(db))
	r.GET("/workshops/:id", handlers.GetWorkshop(db))

	workshopPay := r.Group("/workshops/payment")
	workshopPay.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		workshopPay.POST("/create", handlers.CreateWorkshopPayment(db, gateway, config.AppEnv.Currency))
		workshopPay.POST("/verify", handlers.VerifyWorkshopPayment(db, gateway))
	}

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.POST("/workshops", handlers.CreateWorkshop(db))
		admin.GET("/workshops/:id/registrations", handlers.GetWorkshopRegistrations(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PUT("/orders/:id/delivery", handlers.UpdateDeliveryStatus(db))
		admin.PUT("/orders/:id/cancel", handlers.CancelOrder(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
