package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Username, email and invite code are unique.
// Only the bcrypt hash of the password is stored. FCMToken is set when the
// device registers for push and may be empty.
type User struct {
	ID           uint           `gorm:"primaryKey"`
	Username     string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string         `gorm:"type:varchar(128);not null;uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	InviteCode   string         `gorm:"type:varchar(10);not null;uniqueIndex"`
	AvatarEmoji  string         `gorm:"type:varchar(10);default:'😊'"`
	FCMToken     string         `gorm:"type:varchar(255)"`
	Photos       []ProfilePhoto `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "user" }

// BeforeCreate assigns the shareable invite code: the first 8 hex chars of a
// random UUID, uppercased.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.InviteCode == "" {
		u.InviteCode = strings.ToUpper(uuid.NewString()[:8])
	}
	return nil
}
