package models

import "gorm.io/gorm"

// Flashcard represents an individual question/answer card
type Flashcard struct {
	gorm.Model
	Question string `gorm:"not null;size:1000"`
	Answer   string `gorm:"not null;size:1000"`
	PublicID string `gorm:"size:100;uniqueIndex"`

	CourseID uint   `gorm:"not null;index"`
	UserID   uint   `gorm:"not null;index"`
	Course   Course `gorm:"foreignKey:CourseID" json:"-"`
}
