package main

import (
	"fmt"
	stdlog "log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"agrodesk/internal/cache"
	"agrodesk/internal/config"
	"agrodesk/internal/domain"
	"agrodesk/internal/handler"
	"agrodesk/internal/logger"
	"agrodesk/internal/pdf"
	"agrodesk/internal/repository/postgres"
	"agrodesk/internal/router"
	"agrodesk/internal/service"
	"agrodesk/internal/validation"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validation.Register(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	orderRepo := postgres.NewPurchaseOrderRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Collection caches, one per listing surface
	customerCache := cache.NewCollection(cfg.Cache.ListTTL, func(c domain.Customer) uuid.UUID { return c.ID })
	orderCache := cache.NewCollection(cfg.Cache.ListTTL, func(po domain.PurchaseOrder) uuid.UUID { return po.ID })
	invoiceCache := cache.NewCollection(cfg.Cache.ListTTL, func(inv domain.Invoice) uuid.UUID { return inv.ID })

	// PDF rendering
	renderer := pdf.NewChromeRenderer(cfg.PDF.ChromeTimeout, logger.WithComponent("pdf"))
	defer renderer.Close()
	company := pdf.Company{Name: cfg.PDF.CompanyName, Line: cfg.PDF.CompanyLine}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	customerSvc := service.NewCustomerService(customerRepo, customerCache)
	orderSvc := service.NewPurchaseOrderService(orderRepo, customerRepo, orderCache)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, renderer, company, invoiceCache)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	customerH := handler.NewCustomerHandler(customerSvc)
	orderH := handler.NewPurchaseOrderHandler(orderSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, authSvc, authH, customerH, orderH, invoiceH, statsH, healthH)

	log.Info().Str("port", cfg.Server.Port).Str("environment", cfg.Server.Environment).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
