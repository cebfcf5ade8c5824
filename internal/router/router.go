package router

import (
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/config"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/handler"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/middleware"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/service"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	staffRepo := repository.NewStaffRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cutRepo := repository.NewCashCutRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(staffRepo, cfg)
	productSvc := service.NewProductService(productRepo, rdb, cfg.LowStockThreshold)
	saleSvc := service.NewSaleService(saleRepo, productRepo, dispatcher)
	cutSvc := service.NewCashCutService(cutRepo, saleRepo)
	statsSvc := service.NewStatsService(saleRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	staffH := handler.NewStaffHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	cutsH := handler.NewCashCutHandler(cutSvc, cfg.StoreName)
	statsH := handler.NewStatsHandler(statsSvc)
	exportH := handler.NewExportHandler(saleRepo, cutRepo)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — scanner kiosks, no auth required
	r.GET("/v1/price/:barcode", priceH.GetByBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyStaff := middleware.RequireRole(model.RoleCashier, model.RoleManager, model.RoleAdmin)
	managers := middleware.RequireRole(model.RoleManager, model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Sales — every role can ring up and review the register
		v1.POST("/sales", anyStaff, salesH.Record)
		v1.GET("/sales", anyStaff, salesH.List)
		v1.GET("/sales/:id", anyStaff, salesH.GetByID)

		// Catalog reads for everyone; writes are admin only
		v1.GET("/products", anyStaff, productsH.List)
		v1.GET("/products/low-stock", anyStaff, productsH.ListLowStock)
		v1.GET("/products/:id", anyStaff, productsH.GetByID)
		prods := v1.Group("/products", middleware.RequireRole(model.RoleAdmin))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		// Cash cuts — anyone can see the open period and close it; the
		// reconciliation history is manager territory
		cuts := v1.Group("/cuts")
		{
			cuts.GET("/summary", anyStaff, cutsH.Summary)
			cuts.POST("", anyStaff, cutsH.Close)
			cuts.GET("/history", managers, cutsH.History)
			cuts.GET("/:id/ticket", managers, cutsH.Ticket)
		}

		// Analytics and exports — managers and admins
		stats := v1.Group("/stats", managers)
		{
			stats.GET("/today", statsH.Today)
			stats.GET("/range", statsH.Range)
			stats.GET("/top-products", statsH.TopProducts)
		}
		export := v1.Group("/export", managers)
		{
			export.GET("/sales", exportH.Sales)
			export.GET("/cuts", exportH.Cuts)
		}

		// Staff management — admin only
		staff := v1.Group("/staff", middleware.RequireRole(model.RoleAdmin))
		{
			staff.POST("", staffH.Create)
			staff.GET("", staffH.List)
			staff.PUT("/:id", staffH.Update)
			staff.DELETE("/:id", staffH.Deactivate)
			staff.PATCH("/:id/reactivate", staffH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
