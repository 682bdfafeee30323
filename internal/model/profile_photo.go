package model

import "time"

// ProfilePhoto occupies one of four ordered slots on a profile. Uploads
// upsert on (user, slot).
type ProfilePhoto struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_photo_slot,priority:1"`
	Slot      int    `gorm:"not null;uniqueIndex:idx_photo_slot,priority:2"` // 1-4
	ImageURL  string `gorm:"type:varchar(512);not null"`
	CreatedAt time.Time
}

func (ProfilePhoto) TableName() string { return "profile_photo" }
