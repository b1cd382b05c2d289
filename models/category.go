package models

import "time"

// Category groups posts. A post belongs to at most one category.
type Category struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_category_name"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_category_slug"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`

	PostCount int64 `json:"postCount" gorm:"->;-:migration"`
}
