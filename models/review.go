package models

import "time"

// Review is one user's rating of a product. The unique index enforces
// at most one review per (product, user) pair; handlers also check
// before inserting so the common case gets a friendly message instead
// of a constraint violation.
type Review struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   uint   `gorm:"uniqueIndex:idx_review_product_user;not null" json:"product_id"`
	UserID      uint   `gorm:"uniqueIndex:idx_review_product_user;not null" json:"user_id"`
	User        *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating      int    `gorm:"not null;default:5" json:"rating"` // 1..5
	Text        string `json:"text"`
	UsefulCount int    `gorm:"default:0" json:"useful_count"`
	CreatedAt   time.Time `json:"created_at"`
}
