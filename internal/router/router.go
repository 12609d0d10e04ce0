package router

import (
	"database/sql"
	"net/http"

	"rp_admin_backend/internal/config"
	"rp_admin_backend/internal/extract"
	"rp_admin_backend/internal/handlers"
	"rp_admin_backend/internal/middleware"
	"rp_admin_backend/internal/ocr"
	"rp_admin_backend/internal/repositories"
	"rp_admin_backend/internal/services"
	"rp_admin_backend/internal/storage"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GatewayClient is what the router needs from the gateway client: the proxy
// routes, booking stats and the completion endpoint used for extraction.
type GatewayClient interface {
	handlers.Gateway
	extract.Completer
}

// Dependencies are the long-lived collaborators built in main.
type Dependencies struct {
	DB       *sql.DB
	Config   *config.Config
	JWT      *utils.JWTManager
	Gateway  GatewayClient
	OCR      ocr.Engine
	Receipts storage.ReceiptStore
}

// Setup initializes the routing for the application and returns the auth
// service so main can seed the admin account.
func Setup(engine *gin.Engine, deps Dependencies) services.AuthService {
	handlers.RegisterValidators()
	db := deps.DB

	// Repositories
	authRepo := repositories.NewAuthRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	movementRepo := repositories.NewStockMovementRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	bankRepo := repositories.NewBankTransactionRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Services
	authService := services.NewAuthService(authRepo, db, deps.JWT)
	menuService := services.NewMenuService(menuRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, movementRepo, db)
	purchaseService := services.NewPurchaseService(purchaseRepo, db)
	saleService := services.NewSaleService(saleRepo, db, deps.Config.Sales.BillPrefix)
	reportService := services.NewReportService(reportRepo, inventoryRepo, saleRepo, purchaseRepo, deps.Gateway)
	scanService := services.NewScanService(deps.OCR, deps.Gateway, deps.Receipts, purchaseRepo, saleRepo, bankRepo, db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)
	scanHandler := handlers.NewScanHandler(scanService)
	gatewayHandler := handlers.NewGatewayHandler(deps.Gateway)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if local, ok := deps.Receipts.(*storage.Local); ok {
		engine.Static(local.PublicPath(), local.Dir())
	}

	api := engine.Group("/api")
	SetupPublicAuthRoutes(api.Group("/auth"), authHandler)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(deps.JWT))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupPurchaseRoutes(authenticated, purchaseHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupScanRoutes(authenticated, scanHandler)
		SetupGatewayRoutes(authenticated, gatewayHandler)
	}
	return authService
}
