package router

import (
	"github.com/gin-gonic/gin"

	"agrodesk/internal/config"
	"agrodesk/internal/domain"
	"agrodesk/internal/handler"
	"agrodesk/internal/middleware"
	"agrodesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	customerH *handler.CustomerHandler,
	orderH *handler.PurchaseOrderHandler,
	invoiceH *handler.InvoiceHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.Auth(authSvc))

	customers := protected.Group("/customers")
	customers.POST("", customerH.Create)
	customers.GET("", customerH.List)
	customers.GET("/:id", customerH.GetByID)
	customers.PUT("/:id", customerH.Update)
	customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), customerH.Delete)

	orders := protected.Group("/purchase-orders")
	orders.POST("", orderH.Create)
	orders.GET("", orderH.List)
	orders.GET("/export", orderH.Export)
	orders.GET("/:id", orderH.GetByID)
	orders.PUT("/:id", orderH.Update)
	orders.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), orderH.Delete)

	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.GET("/:id/pdf", invoiceH.DownloadPDF)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), invoiceH.Delete)

	protected.GET("/stats", statsH.GetStats)

	return r
}
