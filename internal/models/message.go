// Package models contains data structures for the application's domain models.
package models

import "time"

// MaxMessageLength is the maximum number of runes in a warble.
const MaxMessageLength = 140

// Message represents a single warble authored by a user.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:varchar(140);not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// LikeCount is not persisted; computed at query time
	LikeCount int64 `gorm:"-" json:"like_count"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked bool `gorm:"-" json:"liked"`
}
