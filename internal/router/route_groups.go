package router

import (
	"rp_admin_backend/internal/handlers"
	"rp_admin_backend/internal/middleware"
	"rp_admin_backend/internal/models"

	"github.com/gin-gonic/gin"
)

var (
	readers = middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff)
	admins  = middleware.RoleAuthMiddleware(models.RoleAdmin)
)

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/users", admins, authHandler.RegisterUser)
}

// SetupMenuRoutes sets up the cafe menu routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticatedGroup.Group("/menu")
	{
		menuRoutes.GET("", readers, menuHandler.GetMenu)
		menuRoutes.POST("", admins, menuHandler.CreateMenuItem)
		menuRoutes.PUT("", admins, menuHandler.UpdateMenuItem)
	}
}

// SetupInventoryRoutes sets up stock routes. PUT covers both adjustments and field edits.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := authenticatedGroup.Group("/inventory")
	{
		inventoryRoutes.GET("", readers, inventoryHandler.GetInventory)
		inventoryRoutes.GET("/movements", readers, inventoryHandler.GetStockMovements)
		inventoryRoutes.POST("", admins, inventoryHandler.CreateInventoryItem)
		inventoryRoutes.PUT("", admins, inventoryHandler.UpdateInventory)
	}
}

func SetupPurchaseRoutes(authenticatedGroup *gin.RouterGroup, purchaseHandler *handlers.PurchaseHandler) {
	purchaseRoutes := authenticatedGroup.Group("/purchases")
	{
		purchaseRoutes.GET("", readers, purchaseHandler.GetPurchases)
		purchaseRoutes.GET("/:id", readers, purchaseHandler.GetPurchaseByID)
		purchaseRoutes.POST("", admins, purchaseHandler.CreatePurchase)
	}
}

func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	{
		saleRoutes.GET("", readers, saleHandler.GetSales)
		saleRoutes.GET("/:id", readers, saleHandler.GetSaleByID)
		saleRoutes.POST("", admins, saleHandler.CreateSale)
	}
}

// SetupReportRoutes sets up the analytics and finance views.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	authenticatedGroup.GET("/analytics", readers, reportHandler.GetAnalytics)
	financeRoutes := authenticatedGroup.Group("/finance")
	{
		financeRoutes.GET("", readers, reportHandler.GetFinance)
		financeRoutes.GET("/export", admins, reportHandler.ExportFinance)
	}
}

// SetupScanRoutes sets up receipt and statement ingestion.
func SetupScanRoutes(authenticatedGroup *gin.RouterGroup, scanHandler *handlers.ScanHandler) {
	scanRoutes := authenticatedGroup.Group("/scan")
	scanRoutes.Use(admins)
	{
		scanRoutes.POST("/receipt", scanHandler.ScanReceipt)
		scanRoutes.POST("/bank-statement", scanHandler.ScanBankStatement)
		scanRoutes.PUT("/bank-statement", scanHandler.SaveBankTransactions)
	}
	authenticatedGroup.GET("/bank-transactions", readers, scanHandler.GetBankTransactions)
}

// SetupGatewayRoutes sets up the routes proxied to the booking gateway.
func SetupGatewayRoutes(authenticatedGroup *gin.RouterGroup, gatewayHandler *handlers.GatewayHandler) {
	bookingRoutes := authenticatedGroup.Group("/bookings")
	{
		bookingRoutes.GET("", readers, gatewayHandler.GetBookings)
		bookingRoutes.GET("/:id", readers, gatewayHandler.GetBookingByID)
		bookingRoutes.PUT("/:id/cancel", admins, gatewayHandler.CancelBooking)
	}
	authenticatedGroup.GET("/customers", readers, gatewayHandler.GetCustomers)
	authenticatedGroup.GET("/calendar", readers, gatewayHandler.GetCalendar)
	authenticatedGroup.GET("/waivers", readers, gatewayHandler.GetWaivers)
	authenticatedGroup.GET("/health", readers, gatewayHandler.GetHealth)
	authenticatedGroup.GET("/leaderboard", readers, gatewayHandler.GetLeaderboard)
	authenticatedGroup.POST("/chat", readers, gatewayHandler.Chat)
}
