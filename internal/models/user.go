package models

import (
	"strconv"
	"time"
)

// User represents a registered account. Passwords are only ever stored as bcrypt hashes.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:candidate" json:"role"`
	Company      string    `gorm:"size:100" json:"company,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IDString returns the user id in the form carried by tokens and stored on documents.
func (u *User) IDString() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
