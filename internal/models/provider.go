package models

import (
	"gorm.io/gorm"
)

// Provider is a wedding service vendor (photographer, caterer, florist...).
type Provider struct {
	gorm.Model
	OwnerID  uint   `gorm:"not null" json:"owner_id"`
	Owner    User   `json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Category string `json:"category"`
	City     string `json:"city"`
}
