package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/jennlope/Buy4U/controllers/cart"
	orderControllers "github.com/jennlope/Buy4U/controllers/order"
	reviewControllers "github.com/jennlope/Buy4U/controllers/review"
	userControllers "github.com/jennlope/Buy4U/controllers/user"
	"github.com/jennlope/Buy4U/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(db))
			cartGroup.POST("/add/:id", cartControllers.AddToCart(db))
			cartGroup.POST("/update/:id", cartControllers.UpdateCartItem(db))
			cartGroup.POST("/remove/:id", cartControllers.RemoveFromCart())
		}

		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		userGroup.GET("/orders", orderControllers.GetUserOrders(db))

		userGroup.POST("/products/:id/reviews", reviewControllers.CreateReview(db))
	}

	// Review helpfulness votes require login but live outside /user
	reviews := r.Group("/reviews")
	reviews.Use(middleware.ValidateToken)
	{
		reviews.POST("/:id/useful", reviewControllers.MarkReviewUseful(db))
	}
}
