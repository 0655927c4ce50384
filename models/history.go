package models

import "time"

const (
	ActionProductView = "product_view"
	ActionSearch      = "search"
)

// BrowsingHistory is an append-only log of product views and search
// queries, keyed by user or anonymous session. Only analytics reads it.
type BrowsingHistory struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint  `gorm:"index:idx_bh_user_created" json:"user_id"`
	SessionKey string `gorm:"size:40" json:"session_key"`
	Action     string `gorm:"size:30;index:idx_bh_action_created" json:"action"`
	ProductID  *uint  `json:"product_id"`
	Query      string `gorm:"size:255" json:"query"`
	Path       string `gorm:"size:255" json:"path"`
	CreatedAt  time.Time `gorm:"index:idx_bh_user_created;index:idx_bh_action_created" json:"created_at"`
}

const (
	EventTypeView     = "view"
	EventTypeClick    = "click"
	EventTypePurchase = "purchase"
)

// Event is the coarser interaction log (views, clicks, purchases).
type Event struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint  `gorm:"index:idx_event_user_created" json:"user_id"`
	SessionKey string `gorm:"size:40" json:"session_key"`
	EventType  string `gorm:"size:10;index:idx_event_type_created" json:"event_type"`
	ProductID  *uint  `json:"product_id"`
	Path       string `gorm:"size:255" json:"path"`
	Metadata   string `json:"metadata"` // free-form JSON blob
	CreatedAt  time.Time `gorm:"index:idx_event_user_created;index:idx_event_type_created" json:"created_at"`
}
