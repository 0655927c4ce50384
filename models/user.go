package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsStaff      bool   `json:"is_staff"`
	Orders       []Order `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
