package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

// GetProducts lists the catalog with the storefront filters.
// GET /shop?name=&brand=&type=&min_price=&max_price=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name")
		brand := c.Query("brand")
		productType := c.Query("type")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		switch sortBy {
		case "name", "price", "created_at", "times_added_to_cart":
		default:
			sortBy = "created_at"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{})

		if name != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
		}
		if brand != "" {
			query = query.Where("LOWER(brand) = LOWER(?)", brand)
		}
		if productType != "" {
			query = query.Where("LOWER(type) = LOWER(?)", productType)
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)
		var products []models.Product
		if err := query.Order(orderClause).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
