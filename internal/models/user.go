package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name                string         `gorm:"not null"`
	Email               string         `gorm:"uniqueIndex;not null"`
	PasswordHash        string         `gorm:"not null"`
	Timezone            string         `gorm:"not null;default:UTC"`
	OnboardingCompleted bool           `gorm:"not null;default:false"`
	OnboardingData      datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	ChatMessages        []ChatMessage        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	MoodLogs            []MoodLog            `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ExerciseCompletions []ExerciseCompletion `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CommunityPosts      []CommunityPost      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Preference          *UserPreference      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
