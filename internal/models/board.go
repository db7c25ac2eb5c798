package models

import "gorm.io/gorm"

type Board struct {
	gorm.Model
	Title   string `gorm:"not null" json:"title"`
	OwnerID uint   `json:"owner_id"`
}
