package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

// GetProductByID returns a single product together with its reviews,
// average rating and review count.
// URL param: /shop/product/:id, query param sort=recent|rating|useful
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		orderClause := "created_at DESC"
		switch c.DefaultQuery("sort", "recent") {
		case "rating":
			orderClause = "rating DESC, created_at DESC"
		case "useful":
			orderClause = "useful_count DESC, created_at DESC"
		}

		var reviews []models.Review
		if err := db.Preload("User").Where("product_id = ?", product.ID).
			Order(orderClause).Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var avgRating float64
		if len(reviews) > 0 {
			row := db.Model(&models.Review{}).
				Where("product_id = ?", product.ID).
				Select("AVG(rating)").Row()
			if err := row.Scan(&avgRating); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rating"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"product":       product,
			"reviews":       reviews,
			"reviews_count": len(reviews),
			"avg_rating":    avgRating,
		})
	}
}
