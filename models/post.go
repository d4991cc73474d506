package models

import "time"

// Post is a piece of user-submitted content. Depending on the sanitizer mode
// the content is either allow-list filtered HTML or raw input. Posts are never
// updated or deleted.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}
