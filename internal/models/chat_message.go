package models

import "gorm.io/gorm"

// Chat roles. The store does not enforce alternation, only append order.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a user's conversation with the companion.
// Rows are immutable once created; ordering is created_at with the
// autoincrement id breaking ties.
type ChatMessage struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	Role    string `gorm:"not null"`
	Content string `gorm:"type:text;not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
