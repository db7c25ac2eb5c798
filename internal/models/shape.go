package models

import (
	"time"

	"gorm.io/gorm"
)

// Shape is one drawable element on a board. ID is the stable handle the
// assistant refers to; AnnotationNumber is assigned once at creation and
// never reused, even after the shape is deleted.
type Shape struct {
	ID               string     `gorm:"primarykey" json:"id"`
	BoardID          uint       `gorm:"index;not null" json:"board_id"`
	Type             string     `gorm:"not null" json:"type"`
	Attributes       Attributes `gorm:"type:jsonb" json:"attributes"`
	AnnotationNumber int        `gorm:"not null" json:"annotation_number"`
	RenderURL        string     `json:"render_url,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	// Deletes are soft so a removed shape still pins its annotation number.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
