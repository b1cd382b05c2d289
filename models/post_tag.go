package models

// PostTag is one tag on a post. Value keeps the author's spelling, Slug is
// the normalized key used for tag pages.
type PostTag struct {
	ID     uint   `json:"id" db:"id" gorm:"primaryKey"`
	PostID uint   `json:"postId" db:"post_id" gorm:"not null;index:idx_post_tag_post_id;uniqueIndex:idx_post_tag_unique"`
	Value  string `json:"value" db:"value" gorm:"type:text;not null"`
	Slug   string `json:"slug" db:"slug" gorm:"type:text;not null;index:idx_post_tag_slug;uniqueIndex:idx_post_tag_unique"`
}
