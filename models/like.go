package models

import "time"

// Like records one visitor liking one post. Fingerprint is an opaque
// client-generated id (older rows hold the client IP).
type Like struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	PostID      uint      `json:"postId" db:"post_id" gorm:"not null;uniqueIndex:idx_like_post_fingerprint"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint" gorm:"type:text;not null;uniqueIndex:idx_like_post_fingerprint"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}
