package models

import "time"

type Product struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"not null" json:"name"`
	Price            float64 `gorm:"not null" json:"price"`
	Brand            string  `json:"brand"`
	Warranty         string  `json:"warranty"`
	Description      string  `json:"description"`
	Image            string  `json:"image"`
	Quantity         int     `json:"quantity"` // units in stock
	Type             string  `json:"type"`
	TimesAddedToCart int     `json:"times_added_to_cart"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
