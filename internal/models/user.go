package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered citizen or administrator.
type User struct {
	ID string `gorm:"primaryKey" json:"id"`
	// Phone is the login credential; unique per account.
	Phone string `gorm:"uniqueIndex;not null" json:"phone"`
	// Name is the display name shown next to submissions.
	Name string `gorm:"type:text" json:"name"`
	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `gorm:"type:text;not null" json:"-"`
	// IsAdmin grants access to triage: full listing, filters, exports,
	// and status transitions.
	IsAdmin bool `json:"isAdmin"`
	// TelegramChatID, when non-zero, receives status change notifications.
	TelegramChatID int64 `json:"-"`
}

// BeforeCreate generates a new UUID for the user if ID is not yet set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
