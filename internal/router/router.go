// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/config"
	"github.com/shopnest/shopnest-backend/internal/handlers"
	"github.com/shopnest/shopnest-backend/internal/middleware"
	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, storageService)
	discountService := services.NewDiscountService(db)
	orderService := services.NewOrderService(db)
	reviewService := services.NewReviewService(db)
	wishlistService := services.NewWishlistService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	discountHandler := handlers.NewDiscountHandler(discountService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", middleware.OptionalAuth(db), authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(db), authHandler.GetProfile)
		}

		// User routes: list/detail/update/delete require credentials, create
		// is open for self-registration.
		users := v1.Group("/users")
		{
			users.POST("", middleware.OptionalAuth(db), userHandler.CreateUser)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired(db))
			{
				protected.GET("", userHandler.GetUsers)
				protected.GET("/:id", userHandler.GetUser)
				protected.PUT("/:id", userHandler.UpdateUser)
				protected.PATCH("/:id", userHandler.UpdateUser)
				protected.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(db))
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.PATCH("/:id", categoryHandler.UpdateCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(db))
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.PATCH("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/images", middleware.UploadRateLimit(), productHandler.UploadImages)
				protected.DELETE("/:id/images", productHandler.DeleteAllImages)
				protected.DELETE("/:id/images/selected", productHandler.DeleteImages)
			}
		}

		// Discount routes
		discounts := v1.Group("/discounts")
		{
			discounts.GET("", discountHandler.GetDiscounts)
			discounts.GET("/:id", discountHandler.GetDiscount)

			protected := discounts.Group("")
			protected.Use(middleware.AuthRequired(db))
			{
				protected.POST("", discountHandler.CreateDiscount)
				protected.PUT("/:id", discountHandler.UpdateDiscount)
				protected.PATCH("/:id", discountHandler.UpdateDiscount)
				protected.DELETE("/:id", discountHandler.DeleteDiscount)
			}
		}

		// Review routes
		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.GET("/:id", reviewHandler.GetReview)

			protected := reviews.Group("")
			protected.Use(middleware.AuthRequired(db))
			{
				protected.POST("", reviewHandler.CreateReview)
				protected.PUT("/:id", reviewHandler.UpdateReview)
				protected.PATCH("/:id", reviewHandler.UpdateReview)
				protected.DELETE("/:id", reviewHandler.DeleteReview)
			}
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired(db))
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("", orderHandler.PlaceOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.PATCH("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}

		// Wishlist routes
		wishlists := v1.Group("/wishlists")
		wishlists.Use(middleware.AuthRequired(db))
		{
			wishlists.GET("", wishlistHandler.GetWishlists)
			wishlists.GET("/:id", wishlistHandler.GetWishlist)
			wishlists.POST("", wishlistHandler.CreateWishlist)
			wishlists.PUT("/:id", wishlistHandler.UpdateWishlist)
			wishlists.PATCH("/:id", wishlistHandler.UpdateWishlist)
			wishlists.DELETE("/:id", wishlistHandler.DeleteWishlist)
		}
	}

	return r
}
