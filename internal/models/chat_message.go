package models

import "gorm.io/gorm"

const (
	CHAT_ROLE_HUMAN     = "human"
	CHAT_ROLE_ASSISTANT = "assistant"
)

// ChatMessage is one half of a persisted turn. Turns are written only once
// the assistant reply is final; partial turns never reach the store.
type ChatMessage struct {
	gorm.Model
	BoardID  uint   `gorm:"index;not null" json:"board_id"`
	SenderID uint   `json:"sender_id"`
	Role     string `gorm:"not null" json:"role"`
	Content  string `gorm:"not null" json:"content"`
}
