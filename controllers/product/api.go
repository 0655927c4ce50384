package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

// ListInStockProducts returns only products with units available.
// GET /api/products
func ListInStockProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where("quantity > 0").Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductRaw returns the bare product row without review context.
// GET /api/products/:id
func GetProductRaw(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
