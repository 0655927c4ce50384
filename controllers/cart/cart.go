package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

// CartSessionKey is the session slot holding the cart: a map from
// product id (string) to requested quantity. The cart is never
// persisted to the database; losing the session loses the cart.
const CartSessionKey = "cart"

// Cart reads the session cart, returning an empty map when none exists.
func Cart(c *gin.Context) map[string]int {
	session := sessions.Default(c)
	if cart, ok := session.Get(CartSessionKey).(map[string]int); ok {
		return cart
	}
	return map[string]int{}
}

// SaveCart writes the cart back to the session.
func SaveCart(c *gin.Context, cart map[string]int) error {
	session := sessions.Default(c)
	session.Set(CartSessionKey, cart)
	return session.Save()
}

// ClearCart empties the session cart wholesale.
func ClearCart(c *gin.Context) error {
	return SaveCart(c, map[string]int{})
}

// AddToCart increments the cart line for a product.
// POST /user/cart/add/:id?quantity=n (quantity defaults to 1)
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		quantity := 1
		if q, err := strconv.Atoi(c.DefaultQuery("quantity", "1")); err == nil && q > 0 {
			quantity = q
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		if !product.InStock() {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
			return
		}

		cart := Cart(c)
		cart[productID] += quantity
		if err := SaveCart(c, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		// Popularity counter, incremented in the database so concurrent
		// adds never lose updates.
		db.Model(&models.Product{}).Where("id = ?", product.ID).
			UpdateColumn("times_added_to_cart", gorm.Expr("times_added_to_cart + ?", 1))

		c.JSON(http.StatusOK, gin.H{
			"message":  "Product added to cart",
			"cart":     cart,
			"quantity": cart[productID],
		})
	}
}

// UpdateCartItem replaces a line's quantity. Zero or negative (or
// unparseable) quantities remove the line entirely.
// POST /user/cart/update/:id with {"quantity": n} or form field
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var input struct {
			Quantity int `form:"quantity" json:"quantity"`
		}
		// Best-effort coercion: garbage reads as zero, which removes the line.
		_ = c.ShouldBind(&input)

		cart := Cart(c)
		if input.Quantity <= 0 {
			delete(cart, productID)
		} else {
			cart[productID] = input.Quantity
		}
		if err := SaveCart(c, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart})
	}
}

// RemoveFromCart deletes a line. Removing an absent product is a no-op.
// POST /user/cart/remove/:id
func RemoveFromCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		cart := Cart(c)
		delete(cart, productID)
		if err := SaveCart(c, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": cart})
	}
}

type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// GetCart materializes the session cart against current catalog rows.
// Products deleted since they were added are skipped rather than
// failing the whole view.
// GET /user/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := Cart(c)

		lines := make([]CartLine, 0, len(cart))
		var total float64
		for productID, quantity := range cart {
			var product models.Product
			if err := db.First(&product, "id = ?", productID).Error; err != nil {
				continue
			}
			subtotal := product.Price * float64(quantity)
			total += subtotal
			lines = append(lines, CartLine{Product: product, Quantity: quantity, Subtotal: subtotal})
		}

		c.JSON(http.StatusOK, gin.H{"items": lines, "total": total})
	}
}
