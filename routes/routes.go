package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bhetghat/bhetghat-server/config"
	"github.com/bhetghat/bhetghat-server/controllers"
	"github.com/bhetghat/bhetghat-server/middleware"
	"github.com/bhetghat/bhetghat-server/utils"
)

// Deps are the shared services handlers close over.
type Deps struct {
	Tokens   *utils.TokenService
	Store    utils.FileStore
	Mailer   utils.Mailer
	Geocoder *utils.Geocoder
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {
	// auth
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register(cfg, deps.Tokens, deps.Mailer))
		auth.GET("/verify", controllers.VerifyUser(cfg, deps.Tokens))
		auth.POST("/login", controllers.Login(cfg, deps.Tokens))
		auth.POST("/upload-profile", controllers.UploadProfilePicture(deps.Store))
		auth.GET("/user/:id", controllers.GetUserByID(cfg))
	}

	// products
	products := r.Group("/api/product")
	{
		products.POST("/create-product", controllers.CreateProduct(cfg, deps.Store, deps.Geocoder))
		products.GET("", controllers.GetAllProducts(cfg))
		products.GET("/:id", controllers.GetSingleProduct(cfg))
		products.PUT("/edit/:id", controllers.UpdateProduct(cfg, deps.Store, deps.Geocoder))
		products.DELETE("/:id", controllers.DeleteProduct(cfg))
	}

	// orders
	orders := r.Group("/api/orders")
	{
		orders.POST("", controllers.CreateOrder(cfg, deps.Store, deps.Mailer))
		orders.POST("/:id/resend-confirmation", controllers.ResendConfirmation(cfg, deps.Store, deps.Mailer))
		orders.GET("/email/:email", controllers.GetOrdersByEmail(cfg))
		orders.GET("", middleware.Auth(deps.Tokens), controllers.GetAllOrders(cfg))
	}

	// admin dashboard
	admin := r.Group("/api/admin")
	admin.Use(middleware.Auth(deps.Tokens))
	{
		admin.GET("", controllers.GetAdminStats(cfg))
	}
}
