package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

type ProductUpdateInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Brand       *string  `json:"brand"`
	Warranty    *string  `json:"warranty"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Quantity    *int     `json:"quantity"`
	Type        *string  `json:"type"`
}

// UpdateProduct updates an existing product by ID. Omitted fields keep
// their current values.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = *input.Price
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Warranty != nil {
			product.Warranty = *input.Warranty
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Quantity != nil {
			if *input.Quantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
				return
			}
			product.Quantity = *input.Quantity
		}
		if input.Type != nil {
			product.Type = *input.Type
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
