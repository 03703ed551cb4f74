package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserPreference struct {
	gorm.Model

	UserID          uint           `gorm:"not null;uniqueIndex"`
	Notifications   datatypes.JSON `gorm:"type:jsonb"`
	Theme           string         `gorm:"not null;default:auto"`
	Language        string         `gorm:"not null;default:en"`
	PrivacySettings datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
