package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/jennlope/Buy4U/controllers/order"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers public order lookups: confirmation pages
// are reachable by order id or ref, status by POSTed order id.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		orders.GET("/confirmation/:id", orderControllers.GetOrderConfirmation(db))
		orders.POST("/status", orderControllers.OrderStatusLookupHandler(db))
	}
}
