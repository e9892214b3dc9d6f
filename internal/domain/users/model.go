package users

import "time"

// User is the authentication identity only. Role, account status and
// region live in the access profile; institution data lives in the
// institutions table. Keeping them apart keeps the security surface
// minimal and independently fetchable.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string
	Tel          string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	IsVerified   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
