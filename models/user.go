package models

import "gorm.io/gorm"

// User represents a registered account
type User struct {
	gorm.Model
	Email        string   `gorm:"unique;not null;size:200"`
	PasswordHash string   `gorm:"not null;size:200" json:"-"`
	Courses      []Course `gorm:"foreignKey:UserID"`
}
