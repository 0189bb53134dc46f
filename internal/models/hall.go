package models

import (
	"gorm.io/gorm"
)

type Hall struct {
	gorm.Model
	OwnerID  uint   `gorm:"not null" json:"owner_id"`
	Owner    User   `json:"-"`
	Name     string `gorm:"not null" json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}
