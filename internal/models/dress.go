package models

import (
	"gorm.io/gorm"
)

type Dress struct {
	gorm.Model
	OwnerID uint    `gorm:"not null" json:"owner_id"`
	Owner   User    `json:"-"`
	Name    string  `gorm:"not null" json:"name"`
	Size    string  `json:"size"`
	Price   float64 `json:"price"`
}
