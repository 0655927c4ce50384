package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/jennlope/Buy4U/controllers/product"
	"github.com/jennlope/Buy4U/middleware"
	"gorm.io/gorm"
)

// SetupShopRoutes registers the public catalog. Requests pass through
// the interaction tracker so views and searches land in the logs.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	shop := r.Group("/shop")
	shop.Use(middleware.OptionalToken, middleware.TrackInteractions(db))
	{
		shop.GET("", productControllers.GetProducts(db))
		shop.GET("/product/:id", productControllers.GetProductByID(db))
	}

	// Bare product API, no tracking
	api := r.Group("/api")
	{
		api.GET("/products", productControllers.ListInStockProducts(db))
		api.GET("/products/:id", productControllers.GetProductRaw(db))
	}
}
