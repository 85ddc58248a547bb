package models

import (
	"time"
)

// Admin is the single seeded administrator account. The store keeps a
// generic shape (lookup by email, token versioning) so additional
// admins could be added without a schema change.
type Admin struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"` // tokens issued before this instant are revoked
	LastLoginAt        *time.Time `json:"last_login_at"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
}

// TableName names the table.
func (Admin) TableName() string {
	return "admins"
}
