package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"    // Order placed, awaiting processing
	OrderStatusInProcess OrderStatus = "in_process" // Being prepared
	OrderStatusShipped   OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled"  // Cancelled before shipping
)

type Order struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items     []ProductOrder `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status    OrderStatus    `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	OrderRef  string         `gorm:"uniqueIndex" json:"order_ref"`
	CreatedAt time.Time      `json:"created_at"`
}

// Total sums unit price times quantity over the order's lines. Items
// must be loaded for the sum to be meaningful.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ProductOrder is one order line: a distinct product and how many
// units of it were bought. UnitPrice is captured at checkout time so
// later price edits do not rewrite order history.
type ProductOrder struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint     `gorm:"index" json:"order_id"`
	ProductID uint     `gorm:"index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}
