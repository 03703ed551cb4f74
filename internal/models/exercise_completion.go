package models

import "gorm.io/gorm"

type ExerciseCompletion struct {
	gorm.Model

	UserID     uint   `gorm:"not null;index"`
	ExerciseID string `gorm:"not null"`
	Duration   int    `gorm:"not null"` // Seconds

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
