package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartControllers "github.com/jennlope/Buy4U/controllers/cart"
	"github.com/jennlope/Buy4U/middleware"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyCart is returned when checkout is attempted with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// UnknownProductError marks a cart line whose product no longer exists.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return "product " + e.ProductID + " is no longer available"
}

// InsufficientStockError names the product and how many units remain.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("there is not enough stock for %s, only %d available", e.ProductName, e.Available)
}

// PlaceOrder turns the session cart into an Order with one line per
// distinct product, decrementing stock as it goes. The whole operation
// runs in a single transaction with each product row locked, so either
// every line is applied or none is, and concurrent checkouts cannot
// drive stock negative.
func PlaceOrder(db *gorm.DB, userID uint, cart map[string]int) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	// Stable lock order across concurrent checkouts.
	productIDs := make([]string, 0, len(cart))
	for id := range cart {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.ProductOrder

		for _, productID := range productIDs {
			quantity := cart[productID]
			if quantity <= 0 {
				continue
			}

			// sqlite has no row locks; its database lock covers the
			// transaction there.
			q := tx
			if tx.Dialector.Name() != "sqlite" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var product models.Product
			if err := q.First(&product, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &UnknownProductError{ProductID: productID}
				}
				return err
			}

			if product.Quantity < quantity {
				return &InsufficientStockError{ProductName: product.Name, Available: product.Quantity}
			}

			product.Quantity -= quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			items = append(items, models.ProductOrder{
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: product.Price,
			})
		}

		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{
			UserID:    &userID,
			Items:     items,
			Status:    models.OrderStatusPending,
			OrderRef:  generateOrderRef(),
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			productID := item.ProductID
			event := models.Event{
				UserID:    &userID,
				EventType: models.EventTypePurchase,
				ProductID: &productID,
				Metadata:  fmt.Sprintf(`{"order_id":%d,"quantity":%d}`, order.ID, item.Quantity),
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// generateOrderRef returns a timestamped unique order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// CheckoutHandler materializes the caller's session cart into an order
// and clears the cart on success.
// POST /user/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart := cartControllers.Cart(c)
		order, err := PlaceOrder(db, userID, cart)
		if err != nil {
			var unknown *UnknownProductError
			var understocked *InsufficientStockError
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Oops! Your cart is currently empty."})
			case errors.As(err, &unknown), errors.As(err, &understocked):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		if err := cartControllers.ClearCart(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order placed but cart could not be cleared"})
			return
		}

		broadcastNewOrder(*order)

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Order " + strconv.Itoa(int(order.ID)) + " has been successfully completed.",
			"order_id":  order.ID,
			"order_ref": order.OrderRef,
			"total":     order.Total(),
		})
	}
}
