package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/jennlope/Buy4U/controllers/order"
	productControllers "github.com/jennlope/Buy4U/controllers/product"
	reportControllers "github.com/jennlope/Buy4U/controllers/report"
	userControllers "github.com/jennlope/Buy4U/controllers/user"
	"github.com/jennlope/Buy4U/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.POST("/import-excel", productControllers.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// Order management + live feed
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// Analytics and exports
		reports := adminGroup.Group("/reports")
		{
			reports.GET("/data", reportControllers.ReportsDataJSON(db))
			reports.GET("/top-products", reportControllers.TopProductsJSON(db))
			reports.GET("/ratings", reportControllers.RatingStatsJSON(db))
			reports.GET("/export/csv", reportControllers.ExportReportsCSV(db))
			reports.GET("/export/excel", reportControllers.ExportReportsExcel(db))
			reports.GET("/export/pdf", reportControllers.ExportReportsPDF(db))
		}

		adminGroup.GET("/browsing-history", reportControllers.BrowsingHistoryList(db))
	}
}
