package models

import "gorm.io/gorm"

// Course represents a user-owned named grouping of flashcards
type Course struct {
	gorm.Model
	Name     string `gorm:"not null;size:100"`
	UserID   uint   `gorm:"not null;index"`
	PublicID string `gorm:"size:100;uniqueIndex"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`

	Flashcards []Flashcard `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
