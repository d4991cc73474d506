package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt hashes only.
// The admin flag is set by backend seeding, never through a public endpoint.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	Posts        []Post    `json:"-"`
}
