package models

import "gorm.io/gorm"

type CommunityPost struct {
	gorm.Model

	UserID       uint   `gorm:"not null;index"`
	GroupID      uint   `gorm:"not null;index"`
	Content      string `gorm:"type:text;not null"`
	IsAnonymous  bool   `gorm:"not null;default:false"`
	LikesCount   int    `gorm:"not null;default:0"`
	CommentCount int    `gorm:"not null;default:0"`

	// Relationships
	User  User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Group CommunityGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
