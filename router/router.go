package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/controllers"
	"github.com/whattheframe/engraving-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)
	employeeCtrl := controllers.NewEmployeeController(db)
	productTypeCtrl := controllers.NewProductTypeController(db)
	analyticsCtrl := controllers.NewAnalyticsController(db)
	backupCtrl := controllers.NewBackupController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "API is live"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)

	// ORDERS
	api.GET("/orders", orderCtrl.GetAllOrders)
	api.POST("/orders", orderCtrl.CreateOrder)
	api.GET("/orders/:uid", orderCtrl.GetOrderByUID)
	api.PATCH("/orders/:uid", orderCtrl.UpdateOrder) // claim / complete

	// EMPLOYEES (settings page)
	api.GET("/employees", employeeCtrl.GetAllEmployees)
	api.POST("/employees", employeeCtrl.CreateEmployee)
	api.DELETE("/employees", employeeCtrl.DeleteEmployee)

	// PRODUCT TYPES (settings page)
	api.GET("/product-types", productTypeCtrl.GetAllProductTypes)
	api.POST("/product-types", productTypeCtrl.CreateProductType)
	api.DELETE("/product-types", productTypeCtrl.DeleteProductType)

	// REPORTING
	api.GET("/analytics", analyticsCtrl.GetAnalytics)
	api.GET("/completed-orders", analyticsCtrl.GetCompletedOrders)
	api.GET("/processing-logs", analyticsCtrl.GetProcessingLogs)
	api.GET("/stats", adminCtrl.GetDashboardStats)

	// BACKUP / RESTORE (admin only)
	admin := api.Group("/")
	admin.Use(middlewares.RequireRole("admin"))
	{
		admin.GET("/backup", backupCtrl.Backup)
		admin.POST("/restore", backupCtrl.Restore)
		admin.POST("/init", adminCtrl.InitDefaults)
	}

	// WebSocket dashboard feed
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", controllers.EventsHandler)
	}

	return r
}
