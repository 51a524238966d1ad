package models

import "time"

// User represents an account holder. Reset code fields back the password
// recovery flow and are cleared on a successful reset. RefreshTokenHash holds
// the SHA-256 digest of the most recently issued refresh token.
type User struct {
	Base
	Name             string     `gorm:"not null" json:"name"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	AvatarURL        *string    `json:"avatarUrl,omitempty"`
	ResetCode        *string    `json:"-"`
	ResetCodeExpiry  *time.Time `json:"-"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
