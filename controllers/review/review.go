package reviewControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/middleware"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating *int   `json:"rating"`
	Text   string `json:"text"`
}

// UserPurchasedProduct reports whether the user owns an order line for
// the product. Only buyers may review.
func UserPurchasedProduct(db *gorm.DB, userID, productID uint) (bool, error) {
	var count int64
	err := db.Model(&models.ProductOrder{}).
		Joins("JOIN orders ON orders.id = product_orders.order_id").
		Where("orders.user_id = ? AND product_orders.product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// CreateReview adds a review for a purchased product. One review per
// (user, product); a missing rating defaults to 5.
// POST /user/products/:id/reviews
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Older clients omit the rating; keep their default of 5.
		rating := 5
		if input.Rating != nil {
			rating = *input.Rating
		}
		if rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}

		purchased, err := UserPurchasedProduct(db, userID, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify purchase"})
			return
		}
		if !purchased {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only review products you have purchased."})
			return
		}

		var existing models.Review
		err = db.Where("product_id = ? AND user_id = ?", product.ID, userID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already left a review for this product."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing review"})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    userID,
			Rating:    rating,
			Text:      input.Text,
		}
		// The unique index backs up the existence check under races.
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already left a review for this product."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Thanks for your review!", "review": review})
	}
}

// MarkReviewUseful bumps a review's helpfulness counter with a database
// increment, never a read-modify-write.
// POST /reviews/:id/useful
func MarkReviewUseful(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
			return
		}

		if err := db.Model(&models.Review{}).Where("id = ?", review.ID).
			UpdateColumn("useful_count", gorm.Expr("useful_count + ?", 1)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Thanks for your feedback!"})
	}
}
