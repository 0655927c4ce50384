package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Brand       string  `json:"brand"`
	Warranty    string  `json:"warranty"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	Type        string  `json:"type"`
}

// CreateProduct creates a new catalog product (admin only).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Price:       input.Price,
			Brand:       input.Brand,
			Warranty:    input.Warranty,
			Description: input.Description,
			Image:       input.Image,
			Quantity:    input.Quantity,
			Type:        input.Type,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
