// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/cache"
	"github.com/nurgarden/ngms-backend/internal/config"
	"github.com/nurgarden/ngms-backend/internal/handlers"
	"github.com/nurgarden/ngms-backend/internal/middleware"
	"github.com/nurgarden/ngms-backend/internal/services"
)

// Setup wires services, handlers and middleware into the HTTP surface.
// Everything under /api except the auth endpoints requires a valid token;
// the AI advisor additionally requires the admin role.
func Setup(cfg *config.Config, db *gorm.DB, statsCache cache.StatsCache) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Services
	statsTTL := time.Duration(cfg.Redis.StatsTTL) * time.Second
	authService := services.NewAuthService(db, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	productService := services.NewProductService(db)
	customerService := services.NewCustomerService(db)
	saleService := services.NewSaleService(db)
	dashboardService := services.NewDashboardService(db, statsCache, statsTTL)
	regionService := services.NewRegionService(db)
	shopService := services.NewShopService(db)
	supplierService := services.NewSupplierService(db)
	goalService := services.NewGoalService(db)
	aiService := services.NewAIService(db, cfg.OpenAI, dashboardService, supplierService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	saleHandler := handlers.NewSaleHandler(saleService, dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	regionHandler := handlers.NewRegionHandler(regionService)
	shopHandler := handlers.NewShopHandler(shopService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	goalHandler := handlers.NewGoalHandler(goalService)
	aiHandler := handlers.NewAIHandler(aiService)
	configHandler := handlers.NewConfigHandler(cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		products := protected.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.POST("", customerHandler.Create)
			customers.GET("/map-data", customerHandler.MapData)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		sales := protected.Group("/sales")
		{
			sales.GET("", saleHandler.List)
			sales.POST("", saleHandler.Create)
			sales.POST("/bulk-import", saleHandler.BulkImport)
			sales.GET("/statistics", saleHandler.Statistics)
			sales.GET("/online", saleHandler.ListOnline)
			sales.POST("/online", saleHandler.CreateOnline)
			sales.GET("/:id", saleHandler.Get)
			sales.PUT("/:id", saleHandler.Update)
			sales.DELETE("/:id", saleHandler.Delete)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/growth-dynamics", dashboardHandler.Growth)
			dashboard.GET("/top-products", dashboardHandler.TopProducts)
			dashboard.GET("/top-customers", dashboardHandler.TopCustomers)
			dashboard.GET("/monthly-stats", dashboardHandler.Monthly)
			dashboard.GET("/detailed-stats", dashboardHandler.Detailed)
		}

		regions := protected.Group("/regions")
		{
			regions.GET("", regionHandler.List)
			regions.POST("", regionHandler.Create)
			regions.GET("/map-data", regionHandler.MapData)
			regions.GET("/occupied-regions", regionHandler.Occupied)
			regions.GET("/:id", regionHandler.Get)
			regions.PUT("/:id", regionHandler.Update)
			regions.DELETE("/:id", regionHandler.Delete)
		}

		shops := protected.Group("/shops")
		{
			shops.GET("", shopHandler.List)
			shops.POST("", shopHandler.Create)
			shops.GET("/map-data", shopHandler.MapData)
			shops.GET("/analysis/top-shops", dashboardHandler.TopShops)
			shops.GET("/analysis/top-regions", dashboardHandler.TopRegions)
			shops.GET("/:id", shopHandler.Get)
			shops.PUT("/:id", shopHandler.Update)
			shops.PUT("/:id/products", shopHandler.SetAssortment)
			shops.DELETE("/:id", shopHandler.Delete)
		}

		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("/analysis/most-profitable", supplierHandler.MostProfitable)
			suppliers.GET("/analysis/risky", supplierHandler.Risky)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.PUT("/:id", supplierHandler.Update)
			suppliers.DELETE("/:id", supplierHandler.Delete)
		}

		goals := protected.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.POST("", goalHandler.Create)
			goals.GET("/:id", goalHandler.Get)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
			goals.POST("/:id/plans", goalHandler.AddPlan)
		}

		plans := protected.Group("/plans")
		{
			plans.PUT("/:id", goalHandler.UpdatePlan)
			plans.DELETE("/:id", goalHandler.DeletePlan)
		}

		protected.GET("/config/mapbox-token", configHandler.MapboxToken)

		ai := protected.Group("/ai")
		ai.Use(middleware.AdminRequired())
		{
			ai.POST("/ask", aiHandler.Ask)
			ai.GET("/report", aiHandler.Report)
			ai.GET("/recommendations", aiHandler.Recommendations)
			ai.GET("/risks", aiHandler.Risks)
		}
	}

	return r
}
