package models

import "time"

// Profile holds display settings for a user. One row per user, keyed by the
// user's id, written with upsert semantics (insert on first save, overwrite
// afterwards).
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100" json:"username"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
