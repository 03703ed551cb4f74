package models

import "gorm.io/gorm"

type MoodLog struct {
	gorm.Model

	UserID    uint   `gorm:"not null;index"`
	MoodLevel int    `gorm:"not null"` // 1-5
	Notes     string `gorm:"type:text"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
