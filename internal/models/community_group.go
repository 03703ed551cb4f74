package models

import "gorm.io/gorm"

type CommunityGroup struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	MemberCount int `gorm:"not null;default:0"`

	// Relationships
	Posts []CommunityPost `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
