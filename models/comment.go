package models

import "time"

// Comment is a reader comment. It starts unapproved and only shows up
// publicly after moderation.
type Comment struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	PostID      uint      `json:"postId" db:"post_id" gorm:"not null;index:idx_comment_post_id"`
	AuthorName  string    `json:"authorName" db:"author_name" gorm:"type:text;not null"`
	AuthorEmail *string   `json:"authorEmail,omitempty" db:"author_email" gorm:"type:text"`
	Content     string    `json:"content" db:"content" gorm:"type:text;not null"`
	Approved    bool      `json:"approved" db:"approved" gorm:"not null;index:idx_comment_approved"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`

	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}
